package tracker

import "sync"

// observers is the change-notification fan-out. Callbacks run synchronously
// on the writing goroutine, in subscription order.
type observers struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn func()
}

// Subscribe registers fn to be called after every successful write. The
// returned cancel function is idempotent.
func (t *Tracker) Subscribe(fn func()) (cancel func()) {
	return t.obs.add(fn)
}

func (o *observers) add(fn func()) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.next++
	id := o.next
	o.subs = append(o.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *observers) remove(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

func (o *observers) notify() {
	o.mu.Lock()
	subs := make([]subscription, len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
