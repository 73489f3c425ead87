package appointments

import (
	"context"
	"testing"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/app/services/core/payments"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppointmentRepo struct {
	contracts.AppointmentRepository
	appointment *models.Appointment
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, _ string) (*models.Appointment, error) {
	return r.appointment, nil
}

func newLedgerUsecaseForTest(appointment *models.Appointment) *ledgerUsecase {
	return &ledgerUsecase{
		AppointmentRepository: &stubAppointmentRepo{appointment: appointment},
		InternalConfig: &config.InternalConfig{
			Payments: config.Payments{DefaultCurrency: "BRL"},
		},
		Log: zap.NewNop(),
	}
}

func TestGetLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("appointment without ledger yields an empty one", func(t *testing.T) {
		usecase := newLedgerUsecaseForTest(&models.Appointment{
			ID:                   "app_1",
			PaymentStatus:        models.PaymentStatusApproved,
			PaymentTransactionID: "pay_1",
		})

		response, err := usecase.GetLedger(ctx, "app_1")
		require.NoError(t, err)

		assert.Equal(t, "app_1", response.AppointmentID)
		assert.Equal(t, models.PaymentStatusApproved, response.PaymentStatus)
		assert.Equal(t, "pay_1", response.PaymentTransactionID)
		require.NotNil(t, response.Ledger)
		assert.Equal(t, "BRL", response.Ledger.Currency)
		assert.Empty(t, response.Ledger.Events)
	})

	t.Run("stored ledger is decoded", func(t *testing.T) {
		bag, err := payments.EncodeLedger(&models.PaymentLedger{
			Currency: "BRL",
			Events: []models.LedgerEvent{
				{Type: models.LedgerEventSettled, Fingerprint: "evt_001"},
			},
			Settlement: &models.Settlement{BaseAmountCents: 20000},
		})
		require.NoError(t, err)

		usecase := newLedgerUsecaseForTest(&models.Appointment{
			ID:            "app_2",
			PaymentStatus: models.PaymentStatusSettled,
			Metadata:      map[string]interface{}{constvars.MetadataKeyPaymentLedger: bag},
		})

		response, err := usecase.GetLedger(ctx, "app_2")
		require.NoError(t, err)

		require.Len(t, response.Ledger.Events, 1)
		assert.Equal(t, "evt_001", response.Ledger.Events[0].Fingerprint)
		require.NotNil(t, response.Ledger.Settlement)
		assert.Equal(t, int64(20000), response.Ledger.Settlement.BaseAmountCents)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		usecase := newLedgerUsecaseForTest(nil)

		_, err := usecase.GetLedger(ctx, "app_missing")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
