package appointments

import (
	"context"
	"sync"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/services/core/payments"
	"onterapi-service/internal/pkg/dto/responses"
	"onterapi-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type ledgerUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	ledgerUsecaseInstance contracts.LedgerUsecase
	onceLedgerUsecase     sync.Once
)

func NewLedgerUsecase(
	appointmentRepository contracts.AppointmentRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LedgerUsecase {
	onceLedgerUsecase.Do(func() {
		ledgerUsecaseInstance = &ledgerUsecase{
			AppointmentRepository: appointmentRepository,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return ledgerUsecaseInstance
}

func (uc *ledgerUsecase) GetLedger(ctx context.Context, appointmentID string) (*responses.AppointmentLedger, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	ledger, err := payments.DecodeLedger(appointment.Metadata, uc.InternalConfig.Payments.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	return &responses.AppointmentLedger{
		AppointmentID:        appointment.ID,
		PaymentStatus:        appointment.PaymentStatus,
		PaymentTransactionID: appointment.PaymentTransactionID,
		Ledger:               ledger,
	}, nil
}
