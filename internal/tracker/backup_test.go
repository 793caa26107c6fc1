package tracker

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/petlife/internal/backup"
	"github.com/rcliao/petlife/internal/model"
	"github.com/rcliao/petlife/internal/store"
)

func TestExportData_EmptyStore(t *testing.T) {
	tr, _ := newTestTracker(t)

	doc, err := tr.ExportData(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Pets)
	assert.NotNil(t, doc.Records)
	assert.Empty(t, doc.Pets)
	assert.Empty(t, doc.Records)
	assert.Equal(t, 1, doc.Version)
	assert.True(t, doc.ExportDate.Equal(t0))
}

func TestExportImport_RoundTripIntoEmptyStore(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestTracker(t)
	_, err := src.SeedDatabase(ctx)
	require.NoError(t, err)

	orphan := record("orphan", "ghost")
	orphan.AttachmentData = "data:application/pdf;base64,JVBERi0="
	orphan.AttachmentType = "application/pdf"
	require.NoError(t, src.SaveRecord(ctx, orphan))

	doc, err := src.ExportData(ctx)
	require.NoError(t, err)

	// through the wire format, as a real restore would
	var buf bytes.Buffer
	require.NoError(t, backup.Encode(&buf, doc))
	decoded, err := backup.Decode(&buf)
	require.NoError(t, err)

	dst, _ := newTestTracker(t)
	res, err := dst.ImportData(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Pets: 1, Records: 6}, res)

	pets, err := dst.GetPets(ctx)
	require.NoError(t, err)
	records, err := dst.GetAllRecords(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, doc.Pets, pets)
	assert.ElementsMatch(t, doc.Records, records)
}

func TestImportData_Merges(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)

	localOnly := model.Pet{ID: "local", Name: "Local", Species: model.SpeciesCat, Breed: "SRD", BirthDate: "2020-01-01", CreatedAt: 1}
	shared := rex()
	require.NoError(t, tr.SavePet(ctx, localOnly))
	require.NoError(t, tr.SavePet(ctx, shared))
	require.NoError(t, tr.SaveRecord(ctx, record("r-local", "local")))
	require.NoError(t, tr.SaveRecord(ctx, record("r-shared", "p1")))

	sharedV2 := shared
	sharedV2.Name = "Rex (from backup)"
	recordV2 := record("r-shared", "p1")
	recordV2.Description = "from backup"
	docOnly := model.Pet{ID: "new", Name: "Newbie", Species: model.SpeciesBird, Breed: "SRD", BirthDate: "2023-01-01", CreatedAt: 9}

	_, err := tr.ImportData(ctx, model.BackupDocument{
		Pets:    []model.Pet{sharedV2, docOnly},
		Records: []model.MedicalRecord{recordV2, record("r-new", "new")},
		Version: 1,
	})
	require.NoError(t, err)

	pets, err := tr.GetPets(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Pet{localOnly, sharedV2, docOnly}, pets)

	records, err := tr.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.MedicalRecord{record("r-local", "local"), recordV2, record("r-new", "new")}, records)
}

func TestImportData_EmptyDocumentChangesNothing(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t)
	require.NoError(t, tr.SavePet(ctx, rex()))
	require.NoError(t, tr.SaveRecord(ctx, record("r1", "p1")))

	empty, _ := newTestTracker(t)
	doc, err := empty.ExportData(ctx)
	require.NoError(t, err)

	before, err := tr.ExportData(ctx)
	require.NoError(t, err)

	at := c.Advance(time.Minute)
	res, err := tr.ImportData(ctx, doc)
	require.NoError(t, err)
	assert.Zero(t, res.Pets)

	after, err := tr.ExportData(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, before.Pets, after.Pets)
	assert.ElementsMatch(t, before.Records, after.Records)

	mod, _, err := tr.LastModified(ctx)
	require.NoError(t, err)
	assert.True(t, mod.Equal(at))
}

func TestImportData_AtomicOnFailure(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.SavePet(ctx, rex()))

	notified := 0
	tr.Subscribe(func() { notified++ })

	replaced := rex()
	replaced.Name = "should not land"
	_, err := tr.ImportData(ctx, model.BackupDocument{
		Pets:    []model.Pet{replaced, {ID: "p2", Name: "Mia"}},
		Records: []model.MedicalRecord{record("r1", "p1"), {PetID: "p1"}}, // second record lacks an id
		Version: 1,
	})
	require.ErrorIs(t, err, store.ErrFailure)

	pets, err := tr.GetPets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Pet{rex()}, pets)

	records, err := tr.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, notified)
}
