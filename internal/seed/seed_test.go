package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/petlife/internal/model"
)

type memSaver struct {
	pets    []model.Pet
	records []model.MedicalRecord
	listErr error
	// failAfter makes SaveRecord fail once this many records are stored; 0 disables.
	failAfter int
}

func (m *memSaver) GetPets(ctx context.Context) ([]model.Pet, error) {
	return m.pets, m.listErr
}

func (m *memSaver) SavePet(ctx context.Context, p model.Pet) error {
	m.pets = append(m.pets, p)
	return nil
}

func (m *memSaver) SaveRecord(ctx context.Context, r model.MedicalRecord) error {
	if m.failAfter > 0 && len(m.records) >= m.failAfter {
		return errors.New("disk full")
	}
	m.records = append(m.records, r)
	return nil
}

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var now = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

func TestDemo_FixedSequence(t *testing.T) {
	pet, recs := Demo(now, counter())

	assert.Equal(t, "Thor", pet.Name)
	assert.Equal(t, model.SpeciesDog, pet.Species)
	assert.Equal(t, now.UnixMilli(), pet.CreatedAt)
	require.Len(t, recs, 5)

	types := make([]model.RecordType, len(recs))
	for i, r := range recs {
		types[i] = r.Type
		assert.Equal(t, pet.ID, r.PetID)
	}
	assert.Equal(t, []model.RecordType{
		model.RecordVaccine,
		model.RecordWeight,
		model.RecordWeight,
		model.RecordWeight,
		model.RecordConsultation,
	}, types)

	assert.Equal(t, "2026-04-21", recs[0].Date)
	assert.Equal(t, "2027-04-21", recs[0].NextDueDate)

	// weights at increasing dates
	assert.Equal(t, "2026-04-21", recs[1].Date)
	assert.Equal(t, "2026-09-18", recs[2].Date)
	assert.Equal(t, "2026-10-18", recs[3].Date)
	assert.Equal(t, []string{"28.5", "29.2", "29.5"},
		[]string{recs[1].Description, recs[2].Description, recs[3].Description})
}

func TestIfEmpty_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	s := &memSaver{}

	seeded, err := IfEmpty(ctx, s, now, counter())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = IfEmpty(ctx, s, now, counter())
	require.NoError(t, err)
	assert.False(t, seeded)

	assert.Len(t, s.pets, 1)
	assert.Len(t, s.records, 5)
}

func TestIfEmpty_SkipsWhenPetsExist(t *testing.T) {
	s := &memSaver{pets: []model.Pet{{ID: "mine"}}}

	seeded, err := IfEmpty(context.Background(), s, now, counter())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Empty(t, s.records)
}

func TestIfEmpty_PropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	s := &memSaver{listErr: boom}

	_, err := IfEmpty(context.Background(), s, now, counter())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.pets)
}

func TestIfEmpty_PartialSeedIsNotRetried(t *testing.T) {
	ctx := context.Background()
	s := &memSaver{failAfter: 2}

	seeded, err := IfEmpty(ctx, s, now, counter())
	require.Error(t, err)
	assert.True(t, seeded, "pet was written before the failure")
	assert.Len(t, s.pets, 1)
	assert.Len(t, s.records, 2)

	s.failAfter = 0
	seeded, err = IfEmpty(ctx, s, now, counter())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, s.records, 2)
}
