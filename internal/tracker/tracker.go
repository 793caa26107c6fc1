// Package tracker coordinates every read and write against the pet store.
//
// Writes run inside one store transaction together with the last-modified
// marker, so readers never see an entity without its marker update. A
// pet deletion removes the pet and all of its records in the same
// transaction. Subscribers are notified after each committed write.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rcliao/petlife/internal/clock"
	"github.com/rcliao/petlife/internal/logger"
	"github.com/rcliao/petlife/internal/model"
	"github.com/rcliao/petlife/internal/store"
)

// Tracker is the entry point used by the CLI and other collaborators.
type Tracker struct {
	store store.Store
	clock clock.Clock
	log   *slog.Logger

	obs    observers
	seedMu sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// New creates a Tracker over s.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: s,
		clock: clock.System{},
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// write runs fn and the last-modified marker update in one transaction,
// then notifies subscribers.
func (t *Tracker) write(ctx context.Context, op string, fn func(tx store.Tx) error, attrs ...any) error {
	now := t.clock.Now()
	err := t.store.Update(ctx, func(tx store.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		return tx.SetMarker(ctx, store.MarkerLastModified, now)
	})
	if err != nil {
		t.log.Error("write failed", append([]any{"op", op, "error", err}, attrs...)...)
		return err
	}
	t.log.Debug("write committed", append([]any{"op", op}, attrs...)...)
	t.obs.notify()
	return nil
}

// SavePet inserts or fully replaces a pet.
func (t *Tracker) SavePet(ctx context.Context, p model.Pet) error {
	return t.write(ctx, "save_pet", func(tx store.Tx) error {
		return tx.PutPet(ctx, p)
	}, "pet_id", p.ID)
}

// GetPets returns all pets in no particular order.
func (t *Tracker) GetPets(ctx context.Context) ([]model.Pet, error) {
	var pets []model.Pet
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		pets, err = tx.ListPets(ctx)
		return err
	})
	return pets, err
}

// GetPetByID returns nil if the pet does not exist.
func (t *Tracker) GetPetByID(ctx context.Context, id string) (*model.Pet, error) {
	var pet *model.Pet
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		pet, err = tx.GetPet(ctx, id)
		return err
	})
	return pet, err
}

// DeletePet removes the pet and every record that references it, atomically.
// Deleting a pet that does not exist still removes any orphan records with
// that pet ID.
func (t *Tracker) DeletePet(ctx context.Context, id string) error {
	var removed int
	err := t.write(ctx, "delete_pet", func(tx store.Tx) error {
		if err := tx.DeletePet(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = tx.DeleteRecordsByPet(ctx, id)
		return err
	}, "pet_id", id)
	if err == nil && removed > 0 {
		t.log.Debug("cascade removed records", "pet_id", id, "records", removed)
	}
	return err
}

// SaveRecord inserts or fully replaces a medical record. The pet ID is not
// checked against existing pets.
func (t *Tracker) SaveRecord(ctx context.Context, r model.MedicalRecord) error {
	return t.write(ctx, "save_record", func(tx store.Tx) error {
		return tx.PutRecord(ctx, r)
	}, "record_id", r.ID, "pet_id", r.PetID)
}

func (t *Tracker) DeleteRecord(ctx context.Context, id string) error {
	return t.write(ctx, "delete_record", func(tx store.Tx) error {
		return tx.DeleteRecord(ctx, id)
	}, "record_id", id)
}

// GetRecordByID returns nil if the record does not exist.
func (t *Tracker) GetRecordByID(ctx context.Context, id string) (*model.MedicalRecord, error) {
	var rec *model.MedicalRecord
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		rec, err = tx.GetRecord(ctx, id)
		return err
	})
	return rec, err
}

func (t *Tracker) GetRecordsByPet(ctx context.Context, petID string) ([]model.MedicalRecord, error) {
	var recs []model.MedicalRecord
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		recs, err = tx.RecordsByPet(ctx, petID)
		return err
	})
	return recs, err
}

func (t *Tracker) GetAllRecords(ctx context.Context) ([]model.MedicalRecord, error) {
	var recs []model.MedicalRecord
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		recs, err = tx.ListRecords(ctx)
		return err
	})
	return recs, err
}

// SearchRecords matches title and description text.
func (t *Tracker) SearchRecords(ctx context.Context, query string, limit int) ([]model.MedicalRecord, error) {
	var recs []model.MedicalRecord
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		recs, err = tx.SearchRecords(ctx, query, limit)
		return err
	})
	return recs, err
}

// LastModified reports when data last changed. ok is false on a store that
// has never been written.
func (t *Tracker) LastModified(ctx context.Context) (time.Time, bool, error) {
	return t.marker(ctx, store.MarkerLastModified)
}

// LastBackup reports when RecordBackup was last called.
func (t *Tracker) LastBackup(ctx context.Context) (time.Time, bool, error) {
	return t.marker(ctx, store.MarkerLastBackup)
}

func (t *Tracker) marker(ctx context.Context, name string) (ts time.Time, ok bool, err error) {
	err = t.store.View(ctx, func(tx store.Tx) error {
		ts, ok, err = tx.Marker(ctx, name)
		return err
	})
	return ts, ok, err
}

// RecordBackup stamps the last-backup marker after a backup file has been
// written. It does not change last-modified.
func (t *Tracker) RecordBackup(ctx context.Context) error {
	now := t.clock.Now()
	err := t.store.Update(ctx, func(tx store.Tx) error {
		return tx.SetMarker(ctx, store.MarkerLastBackup, now)
	})
	if err != nil {
		t.log.Error("record backup failed", "error", err)
		return err
	}
	t.obs.notify()
	return nil
}
