package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rcliao/petlife/internal/model"
)

const recordColumns = `id, pet_id, type, date, title, description, doctor_name,
	next_due_date, attachment_data, attachment_type, created_at`

func (t *sqlTx) PutRecord(ctx context.Context, r model.MedicalRecord) error {
	if r.ID == "" {
		return failure("put record", errors.New("record id required"))
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO records (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			pet_id = excluded.pet_id,
			type = excluded.type,
			date = excluded.date,
			title = excluded.title,
			description = excluded.description,
			doctor_name = excluded.doctor_name,
			next_due_date = excluded.next_due_date,
			attachment_data = excluded.attachment_data,
			attachment_type = excluded.attachment_type,
			created_at = excluded.created_at`,
		r.ID, r.PetID, string(r.Type), r.Date, r.Title, r.Description,
		nullable(r.DoctorName), nullable(r.NextDueDate),
		nullable(r.AttachmentData), nullable(r.AttachmentType), r.CreatedAt)
	if err != nil {
		return failure("put record", err)
	}
	return nil
}

func (t *sqlTx) GetRecord(ctx context.Context, id string) (*model.MedicalRecord, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("get record", err)
	}
	return &r, nil
}

func (t *sqlTx) ListRecords(ctx context.Context) ([]model.MedicalRecord, error) {
	return t.queryRecords(ctx, "list records", `SELECT `+recordColumns+` FROM records`)
}

func (t *sqlTx) RecordsByPet(ctx context.Context, petID string) ([]model.MedicalRecord, error) {
	return t.queryRecords(ctx, "records by pet",
		`SELECT `+recordColumns+` FROM records WHERE pet_id = ?`, petID)
}

// SearchRecords finds records whose title or description contains query,
// case-insensitively, newest event date first.
func (t *sqlTx) SearchRecords(ctx context.Context, query string, limit int) ([]model.MedicalRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return t.queryRecords(ctx, "search records",
		`SELECT `+recordColumns+` FROM records
		 WHERE lower(title) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\'
		 ORDER BY date DESC, created_at DESC
		 LIMIT ?`, pattern, pattern, limit)
}

func (t *sqlTx) DeleteRecord(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id); err != nil {
		return failure("delete record", err)
	}
	return nil
}

func (t *sqlTx) DeleteRecordsByPet(ctx context.Context, petID string) (int, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM records WHERE pet_id = ?`, petID)
	if err != nil {
		return 0, failure("delete records by pet", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, failure("delete records by pet", err)
	}
	return int(n), nil
}

func (t *sqlTx) queryRecords(ctx context.Context, op, query string, args ...interface{}) ([]model.MedicalRecord, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, failure(op, err)
	}
	defer rows.Close()

	records := []model.MedicalRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, failure("scan record", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, failure(op, err)
	}
	return records, nil
}

func scanRecord(row scanner) (model.MedicalRecord, error) {
	var r model.MedicalRecord
	var typ string
	var doctor, nextDue, attachment, attachmentType sql.NullString

	err := row.Scan(
		&r.ID, &r.PetID, &typ, &r.Date, &r.Title, &r.Description,
		&doctor, &nextDue, &attachment, &attachmentType, &r.CreatedAt,
	)
	if err != nil {
		return r, err
	}
	r.Type = model.RecordType(typ)
	r.DoctorName = doctor.String
	r.NextDueDate = nextDue.String
	r.AttachmentData = attachment.String
	r.AttachmentType = attachmentType.String
	return r, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
