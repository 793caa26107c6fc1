package model

import "strings"

// RecordType is the stored medical record category label.
type RecordType string

const (
	RecordVaccine      RecordType = "Vacina"
	RecordConsultation RecordType = "Consulta"
	RecordExam         RecordType = "Exame"
	RecordSurgery      RecordType = "Cirurgia"
	RecordMedication   RecordType = "Medicamento"
	RecordNote         RecordType = "Anotação"
	RecordWeight       RecordType = "Peso"
)

// RecordTypes lists every record type in display order.
var RecordTypes = []RecordType{
	RecordVaccine,
	RecordConsultation,
	RecordExam,
	RecordSurgery,
	RecordMedication,
	RecordNote,
	RecordWeight,
}

var recordTypeNames = map[string]RecordType{
	"vaccine":      RecordVaccine,
	"consultation": RecordConsultation,
	"exam":         RecordExam,
	"surgery":      RecordSurgery,
	"medication":   RecordMedication,
	"note":         RecordNote,
	"weight":       RecordWeight,
}

// ParseRecordType accepts either the English name or the stored label, case-insensitively.
func ParseRecordType(s string) (RecordType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if rt, ok := recordTypeNames[key]; ok {
		return rt, true
	}
	for _, rt := range RecordTypes {
		if strings.ToLower(string(rt)) == key {
			return rt, true
		}
	}
	return "", false
}

// MedicalRecord is a single entry in a pet's medical history.
// For Weight records, Description holds the numeric weight as text.
type MedicalRecord struct {
	ID             string     `json:"id" yaml:"id"`
	PetID          string     `json:"petId" yaml:"petId"`
	Type           RecordType `json:"type" yaml:"type"`
	Date           string     `json:"date" yaml:"date"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	DoctorName     string     `json:"doctorName,omitempty" yaml:"doctorName,omitempty"`
	NextDueDate    string     `json:"nextDueDate,omitempty" yaml:"nextDueDate,omitempty"`
	AttachmentData string     `json:"attachmentData,omitempty" yaml:"-"`
	AttachmentType string     `json:"attachmentType,omitempty" yaml:"attachmentType,omitempty"`
	CreatedAt      int64      `json:"createdAt" yaml:"createdAt"`
}
