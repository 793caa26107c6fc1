// Package seed provides the demonstration data shown on first run.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/petlife/internal/model"
)

const dateLayout = "2006-01-02"

// Saver is the subset of the tracker used to write demo data through the
// normal save path.
type Saver interface {
	GetPets(ctx context.Context) ([]model.Pet, error)
	SavePet(ctx context.Context, p model.Pet) error
	SaveRecord(ctx context.Context, r model.MedicalRecord) error
}

// IfEmpty saves the demo pet and its records when no pets exist. It
// reports whether anything was written.
func IfEmpty(ctx context.Context, s Saver, now time.Time, newID func() string) (bool, error) {
	pets, err := s.GetPets(ctx)
	if err != nil {
		return false, fmt.Errorf("check pets: %w", err)
	}
	if len(pets) > 0 {
		return false, nil
	}

	pet, records := Demo(now, newID)
	if err := s.SavePet(ctx, pet); err != nil {
		return false, fmt.Errorf("seed pet: %w", err)
	}
	for _, r := range records {
		if err := s.SaveRecord(ctx, r); err != nil {
			return true, fmt.Errorf("seed record %s: %w", r.Title, err)
		}
	}
	return true, nil
}

// Demo builds the demo pet and its history relative to now: a vaccine and
// a first weigh-in six months ago, a consultation and a weigh-in one month
// ago, and a weigh-in today.
func Demo(now time.Time, newID func() string) (model.Pet, []model.MedicalRecord) {
	now = now.UTC()
	day := 24 * time.Hour
	today := now.Format(dateLayout)
	oneMonthAgo := now.Add(-30 * day)
	sixMonthsAgo := now.Add(-180 * day)
	created := now.UnixMilli()

	pet := model.Pet{
		ID:        newID(),
		Name:      "Thor",
		Species:   model.SpeciesDog,
		Breed:     "Golden Retriever",
		BirthDate: "2020-05-15",
		CreatedAt: created,
	}

	weight := func(date, kg string) model.MedicalRecord {
		return model.MedicalRecord{
			ID:          newID(),
			PetID:       pet.ID,
			Type:        model.RecordWeight,
			Date:        date,
			Title:       "Weigh-in",
			Description: kg,
			CreatedAt:   created,
		}
	}

	records := []model.MedicalRecord{
		{
			ID:          newID(),
			PetID:       pet.ID,
			Type:        model.RecordVaccine,
			Date:        sixMonthsAgo.Format(dateLayout),
			Title:       "V10 + Rabies",
			Description: "Annual booster given at the VetCare clinic.",
			NextDueDate: sixMonthsAgo.Add(365 * day).Format(dateLayout),
			CreatedAt:   created,
		},
		weight(sixMonthsAgo.Format(dateLayout), "28.5"),
		weight(oneMonthAgo.Format(dateLayout), "29.2"),
		weight(today, "29.5"),
		{
			ID:          newID(),
			PetID:       pet.ID,
			Type:        model.RecordConsultation,
			Date:        oneMonthAgo.Format(dateLayout),
			Title:       "Dermatologist",
			Description: "Mild paw allergy. Prescribed hypoallergenic shampoo.",
			CreatedAt:   created,
		},
	}
	return pet, records
}
