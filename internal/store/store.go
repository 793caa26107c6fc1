// Package store provides the pet/record storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/petlife/internal/model"
)

var (
	// ErrUnavailable means the database could not be opened or prepared.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrFailure means a read, write or transaction failed on an open database.
	ErrFailure = errors.New("storage failure")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func failure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFailure, op, err)
}

// Marker names.
const (
	MarkerLastModified = "last_modified"
	MarkerLastBackup   = "last_backup"
)

// Tx is a unit of work over both collections. All operations on one Tx
// commit or roll back together.
type Tx interface {
	// PutPet inserts or fully replaces a pet by ID.
	PutPet(ctx context.Context, p model.Pet) error
	// GetPet returns nil when no pet has the given ID.
	GetPet(ctx context.Context, id string) (*model.Pet, error)
	ListPets(ctx context.Context) ([]model.Pet, error)
	// DeletePet is a no-op when the pet is absent.
	DeletePet(ctx context.Context, id string) error

	PutRecord(ctx context.Context, r model.MedicalRecord) error
	GetRecord(ctx context.Context, id string) (*model.MedicalRecord, error)
	ListRecords(ctx context.Context) ([]model.MedicalRecord, error)
	// RecordsByPet is the petId index lookup.
	RecordsByPet(ctx context.Context, petID string) ([]model.MedicalRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	// DeleteRecordsByPet removes every record whose petId matches and
	// returns how many were removed.
	DeleteRecordsByPet(ctx context.Context, petID string) (int, error)
	SearchRecords(ctx context.Context, query string, limit int) ([]model.MedicalRecord, error)

	SetMarker(ctx context.Context, name string, t time.Time) error
	// Marker reports ok=false when the marker was never set.
	Marker(ctx context.Context, name string) (t time.Time, ok bool, err error)
}

// Store defines the transactional storage interface.
type Store interface {
	// View runs fn in a transaction that is always rolled back.
	// Reads inside fn see one consistent snapshot.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Update runs fn in a transaction that commits only if fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Close closes the store.
	Close() error
}
