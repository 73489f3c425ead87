package requests

type ConfirmHold struct {
	HoldID               string `json:"holdId" validate:"required"`
	ClinicID             string `json:"clinicId" validate:"required"`
	TenantID             string `json:"tenantId" validate:"required"`
	IdempotencyKey       string `json:"idempotencyKey" validate:"required"`
	PaymentTransactionID string `json:"paymentTransactionId" validate:"required"`
	ConfirmedBy          string `json:"confirmedBy" validate:"required"`
}

type OverbookingReview struct {
	HoldID        string `json:"holdId" validate:"required"`
	ClinicID      string `json:"clinicId" validate:"required"`
	TenantID      string `json:"tenantId" validate:"required"`
	PerformedBy   string `json:"performedBy" validate:"required"`
	Approve       *bool  `json:"approve" validate:"required"`
	Justification string `json:"justification"`
}
