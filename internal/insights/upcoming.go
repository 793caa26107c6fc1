// Package insights derives read-only views from pets and records: upcoming
// reminders and weight history.
package insights

import (
	"sort"

	"github.com/rcliao/petlife/internal/model"
)

// RemovedPetName labels reminders whose pet no longer exists.
const RemovedPetName = "Removed pet"

// Reminder is a record with a pending next-due date, joined with its pet.
type Reminder struct {
	Record  model.MedicalRecord `json:"record" yaml:"record"`
	PetName string              `json:"petName" yaml:"petName"`
	Orphan  bool                `json:"orphan,omitempty" yaml:"orphan,omitempty"`
}

// Upcoming returns reminders for records whose NextDueDate is on or after
// today (YYYY-MM-DD), soonest first.
func Upcoming(pets []model.Pet, records []model.MedicalRecord, today string) []Reminder {
	names := make(map[string]string, len(pets))
	for _, p := range pets {
		names[p.ID] = p.Name
	}

	out := []Reminder{}
	for _, r := range records {
		if r.NextDueDate == "" || r.NextDueDate < today {
			continue
		}
		name, ok := names[r.PetID]
		if !ok {
			name = RemovedPetName
		}
		out = append(out, Reminder{Record: r, PetName: name, Orphan: !ok})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Record, out[j].Record
		if a.NextDueDate != b.NextDueDate {
			return a.NextDueDate < b.NextDueDate
		}
		return a.ID < b.ID
	})
	return out
}
