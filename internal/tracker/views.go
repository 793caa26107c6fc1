package tracker

import (
	"context"

	"github.com/rcliao/petlife/internal/ids"
	"github.com/rcliao/petlife/internal/insights"
	"github.com/rcliao/petlife/internal/model"
	"github.com/rcliao/petlife/internal/seed"
	"github.com/rcliao/petlife/internal/store"
)

// SeedDatabase writes the demo pet and records if the store has no pets.
// Concurrent calls are serialized so the demo data is written at most once.
func (t *Tracker) SeedDatabase(ctx context.Context) (bool, error) {
	t.seedMu.Lock()
	defer t.seedMu.Unlock()

	now := t.clock.Now()
	seeded, err := seed.IfEmpty(ctx, t, now, func() string { return ids.NewAt(now) })
	if err != nil {
		return seeded, err
	}
	if seeded {
		t.log.Info("seeded demo data")
	}
	return seeded, nil
}

// Upcoming lists reminders due on or after today's date.
func (t *Tracker) Upcoming(ctx context.Context) ([]insights.Reminder, error) {
	var (
		pets    []model.Pet
		records []model.MedicalRecord
	)
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		if pets, err = tx.ListPets(ctx); err != nil {
			return err
		}
		records, err = tx.ListRecords(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	today := t.clock.Now().Format("2006-01-02")
	return insights.Upcoming(pets, records, today), nil
}

// Weights returns the weight history of one pet, oldest first.
func (t *Tracker) Weights(ctx context.Context, petID string) ([]insights.WeightPoint, error) {
	records, err := t.GetRecordsByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return insights.Weights(records), nil
}
