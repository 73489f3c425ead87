package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusApproved   PaymentStatus = "approved"
	PaymentStatusSettled    PaymentStatus = "settled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusChargeback PaymentStatus = "chargeback"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Appointment is the durable record of a paid or payable clinical slot.
// It is created exactly once per confirmed hold and never deleted;
// cancellation is a payment status change, not a row removal.
type Appointment struct {
	ID                   string                 `bson:"_id,omitempty" json:"id"`
	TenantID             string                 `bson:"tenantId" json:"tenantId"`
	ClinicID             string                 `bson:"clinicId" json:"clinicId"`
	HoldID               string                 `bson:"holdId" json:"holdId"`
	ProfessionalID       string                 `bson:"professionalId" json:"professionalId"`
	PatientID            string                 `bson:"patientId" json:"patientId"`
	ServiceTypeID        string                 `bson:"serviceTypeId" json:"serviceTypeId"`
	Start                time.Time              `bson:"start" json:"start"`
	End                  time.Time              `bson:"end" json:"end"`
	PaymentStatus        PaymentStatus          `bson:"paymentStatus" json:"paymentStatus"`
	PaymentTransactionID string                 `bson:"paymentTransactionId" json:"paymentTransactionId"`
	ConfirmedAt          time.Time              `bson:"confirmedAt" json:"confirmedAt"`
	ConfirmedBy          string                 `bson:"confirmedBy,omitempty" json:"confirmedBy,omitempty"`
	Metadata             map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt            time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time              `bson:"updatedAt" json:"updatedAt"`
}
