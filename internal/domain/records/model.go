package records

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord maps to the medical_record table. One record documents one
// visit.
type MedicalRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Symptoms      *string    `db:"symptoms" json:"symptoms,omitempty"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis"`
	Treatment     *string    `db:"treatment" json:"treatment,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	VisitDate     time.Time  `db:"visit_date" json:"visit_date"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
