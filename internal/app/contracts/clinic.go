package contracts

import (
	"context"

	"onterapi-service/internal/app/models"
)

type ClinicRepository interface {
	// FindByTenant returns nil, nil when the clinic does not exist under the
	// tenant.
	FindByTenant(ctx context.Context, tenantID, clinicID string) (*models.Clinic, error)
}

type ServiceTypeRepository interface {
	// FindByID returns nil, nil when the service type does not exist under
	// the clinic.
	FindByID(ctx context.Context, clinicID, serviceTypeID string) (*models.ServiceType, error)
}

type ClinicSettingsRepository interface {
	// FindLatestPaymentSettings decodes the latest applied "payments"
	// settings version for the clinic, or returns nil, nil when none was
	// ever applied.
	FindLatestPaymentSettings(ctx context.Context, clinicID string) (*models.PaymentSettings, error)
}
