package contracts

import (
	"context"
	"time"

	"onterapi-service/internal/app/models"
)

type AppointmentOverlapQuery struct {
	TenantID       string
	ProfessionalID string
	Start          time.Time
	End            time.Time
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByHoldID(ctx context.Context, holdID string) (*models.Appointment, error)
	FindByPaymentTransactionID(ctx context.Context, transactionID string) (*models.Appointment, error)
	FindOverlapping(ctx context.Context, query *AppointmentOverlapQuery) ([]models.Appointment, error)
	UpdatePaymentStatus(ctx context.Context, appointmentID string, status models.PaymentStatus) error
	// PatchMetadata merges the given keys into the appointment metadata bag
	// without touching other keys.
	PatchMetadata(ctx context.Context, appointmentID string, patch map[string]interface{}) error
}
