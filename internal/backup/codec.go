// Package backup encodes and decodes the JSON backup document used to move a
// pet store between devices.
//
// The file format is a single JSON object:
//
//	{"pets": [...], "records": [...], "exportDate": "<ISO-8601>", "version": 1}
//
// Decode checks the shape of the document before anything touches the
// store, so a bad file never produces a partial import.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rcliao/petlife/internal/model"
)

// ErrMalformed matches every *MalformedError via errors.Is.
var ErrMalformed = errors.New("malformed backup document")

// MalformedError reports why an import document was rejected.
type MalformedError struct {
	Field  string // top-level key or entity path, empty for whole-document errors
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	msg := "malformed backup document"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func (e *MalformedError) Unwrap() error { return e.Err }

func malformed(field, reason string, err error) error {
	return &MalformedError{Field: field, Reason: reason, Err: err}
}

// Encode writes doc as indented JSON followed by a newline.
func Encode(w io.Writer, doc model.BackupDocument) error {
	if doc.Pets == nil {
		doc.Pets = []model.Pet{}
	}
	if doc.Records == nil {
		doc.Records = []model.MedicalRecord{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Decode reads and validates a backup document. Any problem with the input
// is returned as a *MalformedError; unknown top-level keys are ignored.
func Decode(r io.Reader) (model.BackupDocument, error) {
	var doc model.BackupDocument

	data, err := io.ReadAll(r)
	if err != nil {
		return doc, fmt.Errorf("read backup: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return doc, malformed("", "not a JSON object", err)
	}

	version, err := decodeVersion(top)
	if err != nil {
		return doc, err
	}
	doc.Version = version

	if err := decodeArray(top, "pets", &doc.Pets); err != nil {
		return doc, err
	}
	if err := decodeArray(top, "records", &doc.Records); err != nil {
		return doc, err
	}

	if raw, ok := top["exportDate"]; ok && !isNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return doc, malformed("exportDate", "must be a string", err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return doc, malformed("exportDate", "must be an ISO-8601 timestamp", err)
		}
		doc.ExportDate = t
	}

	for i, p := range doc.Pets {
		if p.ID == "" {
			return doc, malformed(fmt.Sprintf("pets[%d].id", i), "missing", nil)
		}
	}
	for i, rec := range doc.Records {
		if rec.ID == "" {
			return doc, malformed(fmt.Sprintf("records[%d].id", i), "missing", nil)
		}
	}
	return doc, nil
}

func decodeVersion(top map[string]json.RawMessage) (int, error) {
	raw, ok := top["version"]
	if !ok || isNull(raw) {
		return 0, malformed("version", "missing", nil)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '"' {
		return 0, malformed("version", "must be an integer", nil)
	}
	var v json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, malformed("version", "must be an integer", err)
	}
	n, err := v.Int64()
	if err != nil {
		return 0, malformed("version", "must be an integer", err)
	}
	if n < 1 || n > model.BackupVersion {
		return 0, malformed("version", fmt.Sprintf("unsupported version %d", n), nil)
	}
	return int(n), nil
}

func decodeArray(top map[string]json.RawMessage, key string, dest interface{}) error {
	raw, ok := top[key]
	if !ok {
		return malformed(key, "missing", nil)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.TrimSpace(raw)[0] != '[' {
		return malformed(key, "must be an array", nil)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return malformed(key, "invalid entry", err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Filename returns the conventional backup file name for a backup taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("PetLife_Backup_%s_%s.json", t.Format("2006-01-02"), t.Format("15-04"))
}
