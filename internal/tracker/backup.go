package tracker

import (
	"context"

	"github.com/rcliao/petlife/internal/model"
	"github.com/rcliao/petlife/internal/store"
)

// ExportData reads both collections from one snapshot and returns a backup
// document stamped with the current time. It does not touch any marker.
func (t *Tracker) ExportData(ctx context.Context) (model.BackupDocument, error) {
	doc := model.BackupDocument{Version: model.BackupVersion}
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		if doc.Pets, err = tx.ListPets(ctx); err != nil {
			return err
		}
		doc.Records, err = tx.ListRecords(ctx)
		return err
	})
	if err != nil {
		return model.BackupDocument{}, err
	}
	doc.ExportDate = t.clock.Now()
	return doc, nil
}

// ImportResult counts the entities upserted by ImportData.
type ImportResult struct {
	Pets    int `json:"pets" yaml:"pets"`
	Records int `json:"records" yaml:"records"`
}

// ImportData upserts every pet and record in doc in one transaction.
//
// Import merges: entities already in the store but missing from doc are kept,
// entities in both are replaced by the document's copy. Records whose pet
// exists in neither place are accepted as orphans.
func (t *Tracker) ImportData(ctx context.Context, doc model.BackupDocument) (ImportResult, error) {
	err := t.write(ctx, "import", func(tx store.Tx) error {
		for _, p := range doc.Pets {
			if err := tx.PutPet(ctx, p); err != nil {
				return err
			}
		}
		for _, r := range doc.Records {
			if err := tx.PutRecord(ctx, r); err != nil {
				return err
			}
		}
		return nil
	}, "pets", len(doc.Pets), "records", len(doc.Records))
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Pets: len(doc.Pets), Records: len(doc.Records)}, nil
}
