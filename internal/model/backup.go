package model

import "time"

// BackupVersion is the schema version written by ExportData.
const BackupVersion = 1

// BackupDocument is a full snapshot of the store.
type BackupDocument struct {
	Pets       []Pet           `json:"pets" yaml:"pets"`
	Records    []MedicalRecord `json:"records" yaml:"records"`
	ExportDate time.Time       `json:"exportDate" yaml:"exportDate"`
	Version    int             `json:"version" yaml:"version"`
}
