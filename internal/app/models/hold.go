package models

import (
	"time"
)

type HoldStatus string

const (
	HoldStatusPending   HoldStatus = "pending"
	HoldStatusConfirmed HoldStatus = "confirmed"
	HoldStatusCancelled HoldStatus = "cancelled"
	HoldStatusExpired   HoldStatus = "expired"
)

// IsTerminal reports whether the hold can no longer transition.
func (s HoldStatus) IsTerminal() bool {
	return s == HoldStatusConfirmed || s == HoldStatusCancelled || s == HoldStatusExpired
}

type OverbookingStatus string

const (
	OverbookingPendingReview OverbookingStatus = "pending_review"
	OverbookingApproved      OverbookingStatus = "approved"
	OverbookingRejected      OverbookingStatus = "rejected"
)

// OverbookingRecord is produced by the risk-scoring collaborator when a hold
// looks like a double booking and is settled by the review flow.
type OverbookingRecord struct {
	Status        OverbookingStatus      `bson:"status" json:"status"`
	RiskScore     float64                `bson:"riskScore" json:"riskScore"`
	Threshold     float64                `bson:"threshold" json:"threshold"`
	Reasons       []string               `bson:"reasons,omitempty" json:"reasons,omitempty"`
	Context       map[string]interface{} `bson:"context,omitempty" json:"context,omitempty"`
	ReviewedBy    string                 `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	Justification string                 `bson:"justification,omitempty" json:"justification,omitempty"`
	ReviewedAt    *time.Time             `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}

// ConfirmationRecord is stamped into hold metadata when the hold is converted
// into an appointment. The idempotency key stored here is what makes a
// confirmation retry recognizable.
type ConfirmationRecord struct {
	IdempotencyKey string    `bson:"idempotencyKey" json:"idempotencyKey"`
	AppointmentID  string    `bson:"appointmentId" json:"appointmentId"`
	ConfirmedBy    string    `bson:"confirmedBy" json:"confirmedBy"`
	ConfirmedAt    time.Time `bson:"confirmedAt" json:"confirmedAt"`
}

// HoldMetadata is the typed view of the open metadata bag carried by a hold.
type HoldMetadata struct {
	Overbooking  *OverbookingRecord     `bson:"overbooking,omitempty" json:"overbooking,omitempty"`
	Confirmation *ConfirmationRecord    `bson:"confirmation,omitempty" json:"confirmation,omitempty"`
	Extra        map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"`
}

// Hold is a time-boxed, tentative reservation of a professional's schedule
// slot, not yet paid.
type Hold struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	TenantID        string        `bson:"tenantId" json:"tenantId"`
	ClinicID        string        `bson:"clinicId" json:"clinicId"`
	ProfessionalID  string        `bson:"professionalId" json:"professionalId"`
	PatientID       string        `bson:"patientId" json:"patientId"`
	ServiceTypeID   string        `bson:"serviceTypeId" json:"serviceTypeId"`
	Start           time.Time     `bson:"start" json:"start"`
	End             time.Time     `bson:"end" json:"end"`
	TTLExpiresAt    time.Time     `bson:"ttlExpiresAt" json:"ttlExpiresAt"`
	Status          HoldStatus    `bson:"status" json:"status"`
	IdempotencyKey  string        `bson:"idempotencyKey" json:"idempotencyKey"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	CancelReason    string        `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	Metadata        HoldMetadata  `bson:"metadata" json:"metadata"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
	CreatedBy       string        `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	LastModifiedBy  string        `bson:"lastModifiedBy,omitempty" json:"lastModifiedBy,omitempty"`
	AppointmentID   string        `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	ExpiredAt       *time.Time    `bson:"expiredAt,omitempty" json:"expiredAt,omitempty"`
	CancelledAt     *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	ConfirmedAt     *time.Time    `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
}
