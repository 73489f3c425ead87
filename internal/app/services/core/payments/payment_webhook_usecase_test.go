package payments

import (
	"context"
	"testing"
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func webhookTestConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Payments: config.Payments{
			DefaultCurrency:           "BRL",
			SplitAdjustmentIterations: 100,
		},
	}
}

func newWebhookUsecase(appointmentRepo *fakeAppointmentRepo, holdRepo *fakeHoldRepo, audit *fakeAuditSink, publisher *fakePublisher, archive *fakeArchive) *paymentWebhookUsecase {
	return &paymentWebhookUsecase{
		AppointmentRepository: appointmentRepo,
		HoldRepository:        holdRepo,
		AuditSink:             audit,
		EventPublisher:        publisher,
		WebhookArchive:        archive,
		InternalConfig:        webhookTestConfig(),
		Log:                   zap.NewNop(),
	}
}

func receivedWebhook(transactionID string) *requests.PaymentWebhook {
	return &requests.PaymentWebhook{
		Provider:   constvars.PaymentProviderAsaas,
		ReceivedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Payload: requests.AsaasWebhookPayload{
			ID:    "evt_12345",
			Event: "PAYMENT_RECEIVED",
			Payment: &requests.AsaasPayment{
				ID:          transactionID,
				Status:      "RECEIVED",
				Value:       200,
				NetValue:    194,
				PaymentDate: "2026-03-14",
			},
		},
		RawBody: []byte(`{"event":"PAYMENT_RECEIVED"}`),
	}
}

func TestPaymentWebhookProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported provider is rejected", func(t *testing.T) {
		usecase := newWebhookUsecase(newFakeAppointmentRepo(), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		request := receivedWebhook("pay_1")
		request.Provider = "stripe"
		err := usecase.Process(ctx, request)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("missing payment id is rejected", func(t *testing.T) {
		usecase := newWebhookUsecase(newFakeAppointmentRepo(), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		request := receivedWebhook("")
		request.Payload.Payment.ID = ""
		err := usecase.Process(ctx, request)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevWebhookMissingPaymentID, customErr.DevMessage)
	})

	t.Run("unmappable gateway status is rejected", func(t *testing.T) {
		usecase := newWebhookUsecase(newFakeAppointmentRepo(), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		request := receivedWebhook("pay_1")
		request.Payload.Payment.Status = "SOMETHING_NEW"
		request.Payload.Event = "PAYMENT_SOMETHING_NEW"
		err := usecase.Process(ctx, request)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevWebhookUnknownStatus, customErr.DevMessage)
	})

	t.Run("unknown transaction id is rejected", func(t *testing.T) {
		usecase := newWebhookUsecase(newFakeAppointmentRepo(), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		err := usecase.Process(ctx, receivedWebhook("pay_unknown"))

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("received payment updates appointment hold and ledger inputs", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_1",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			HoldID:               "hold_1",
			PaymentStatus:        "",
			PaymentTransactionID: "pay_1",
		}
		hold := &models.Hold{ID: "hold_1", TenantID: "tenant_1", Status: models.HoldStatusConfirmed}
		appointmentRepo := newFakeAppointmentRepo(appointment)
		holdRepo := newFakeHoldRepo(hold)
		audit := &fakeAuditSink{}
		publisher := &fakePublisher{}
		archive := &fakeArchive{}
		usecase := newWebhookUsecase(appointmentRepo, holdRepo, audit, publisher, archive)

		err := usecase.Process(ctx, receivedWebhook("pay_1"))
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusApproved, appointment.PaymentStatus)
		assert.Equal(t, models.PaymentStatusApproved, holdRepo.statusUpdates["hold_1"])
		assert.Len(t, archive.stored, 1)

		gateway, valid := appointment.Metadata[constvars.MetadataKeyGateway].(map[string]interface{})
		require.True(t, valid)
		assert.Equal(t, "pay_1", gateway["id"])
		assert.Equal(t, float64(200), gateway["value"])
		assert.Contains(t, appointment.Metadata, constvars.MetadataKeyPaidAt)

		assert.Equal(t, 1, audit.countByEvent(constvars.AuditEventPaymentStatusChanged))

		require.Len(t, publisher.lifecycleEvents, 1)
		event := publisher.lifecycleEvents[0]
		assert.Equal(t, models.PaymentEventStatusChanged, event.Kind)
		assert.Equal(t, "evt_12345", event.Fingerprint)
		assert.Equal(t, models.PaymentStatusApproved, event.NewStatus)
		require.NotNil(t, event.Amount)
		assert.Equal(t, float64(200), event.Amount.Value)
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), event.OccurredAt)
	})

	t.Run("settled status publishes a settled event", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_2",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			PaymentTransactionID: "pay_2",
			PaymentStatus:        models.PaymentStatusApproved,
		}
		publisher := &fakePublisher{}
		usecase := newWebhookUsecase(newFakeAppointmentRepo(appointment), newFakeHoldRepo(), &fakeAuditSink{}, publisher, &fakeArchive{})

		request := receivedWebhook("pay_2")
		request.Payload.Event = "PAYMENT_ANTICIPATED"
		request.Payload.Payment.Status = "SETTLED"
		require.NoError(t, usecase.Process(ctx, request))

		assert.Equal(t, models.PaymentStatusSettled, appointment.PaymentStatus)
		require.Len(t, publisher.lifecycleEvents, 1)
		assert.Equal(t, models.PaymentEventSettled, publisher.lifecycleEvents[0].Kind)
		assert.Equal(t, models.PaymentStatusApproved, publisher.lifecycleEvents[0].PreviousStatus)
	})

	t.Run("appointment without hold skips the hold mirror", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_3",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			PaymentTransactionID: "pay_3",
		}
		holdRepo := newFakeHoldRepo()
		usecase := newWebhookUsecase(newFakeAppointmentRepo(appointment), holdRepo, &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		require.NoError(t, usecase.Process(ctx, receivedWebhook("pay_3")))
		assert.Empty(t, holdRepo.statusUpdates)
	})

	t.Run("redelivered older status does not move the payment backward", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_5",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			HoldID:               "hold_5",
			PaymentTransactionID: "pay_5",
		}
		hold := &models.Hold{ID: "hold_5", TenantID: "tenant_1", Status: models.HoldStatusConfirmed}
		holdRepo := newFakeHoldRepo(hold)
		audit := &fakeAuditSink{}
		publisher := &fakePublisher{}
		usecase := newWebhookUsecase(newFakeAppointmentRepo(appointment), holdRepo, audit, publisher, &fakeArchive{})

		settled := receivedWebhook("pay_5")
		settled.Payload.ID = "evt_settled"
		settled.Payload.Event = "PAYMENT_RECEIVED_IN_ADVANCE"
		settled.Payload.Payment.Status = "RECEIVED_IN_ADVANCE"
		require.NoError(t, usecase.Process(ctx, settled))
		require.Equal(t, models.PaymentStatusSettled, appointment.PaymentStatus)

		stale := receivedWebhook("pay_5")
		stale.Payload.ID = "evt_stale"
		stale.Payload.Payment.Status = "CONFIRMED"
		require.NoError(t, usecase.Process(ctx, stale))

		assert.Equal(t, models.PaymentStatusSettled, appointment.PaymentStatus)
		assert.Equal(t, models.PaymentStatusSettled, holdRepo.statusUpdates["hold_5"])
		assert.Equal(t, 1, audit.countByEvent(constvars.AuditEventPaymentStatusChanged))
		assert.Len(t, publisher.lifecycleEvents, 1)

		gateway, valid := appointment.Metadata[constvars.MetadataKeyGateway].(map[string]interface{})
		require.True(t, valid)
		assert.Equal(t, "RECEIVED_IN_ADVANCE", gateway["status"])
	})

	t.Run("duplicate delivery of the same status is a no-op", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_6",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			PaymentTransactionID: "pay_6",
		}
		appointmentRepo := newFakeAppointmentRepo(appointment)
		publisher := &fakePublisher{}
		usecase := newWebhookUsecase(appointmentRepo, newFakeHoldRepo(), &fakeAuditSink{}, publisher, &fakeArchive{})

		require.NoError(t, usecase.Process(ctx, receivedWebhook("pay_6")))
		require.NoError(t, usecase.Process(ctx, receivedWebhook("pay_6")))

		assert.Equal(t, models.PaymentStatusApproved, appointment.PaymentStatus)
		assert.Len(t, appointmentRepo.statusUpdates, 1)
		assert.Len(t, publisher.lifecycleEvents, 1)
	})

	t.Run("capture after an overdue notice still advances", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_7",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			PaymentTransactionID: "pay_7",
		}
		usecase := newWebhookUsecase(newFakeAppointmentRepo(appointment), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, &fakeArchive{})

		overdue := receivedWebhook("pay_7")
		overdue.Payload.ID = "evt_overdue"
		overdue.Payload.Event = "PAYMENT_OVERDUE"
		overdue.Payload.Payment.Status = "OVERDUE"
		require.NoError(t, usecase.Process(ctx, overdue))
		require.Equal(t, models.PaymentStatusFailed, appointment.PaymentStatus)

		require.NoError(t, usecase.Process(ctx, receivedWebhook("pay_7")))
		assert.Equal(t, models.PaymentStatusApproved, appointment.PaymentStatus)
	})

	t.Run("archive failure does not block processing", func(t *testing.T) {
		appointment := &models.Appointment{
			ID:                   "app_4",
			TenantID:             "tenant_1",
			ClinicID:             "clinic_1",
			PaymentTransactionID: "pay_4",
		}
		archive := &fakeArchive{err: assert.AnError}
		usecase := newWebhookUsecase(newFakeAppointmentRepo(appointment), newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{}, archive)

		require.NoError(t, usecase.Process(ctx, receivedWebhook("pay_4")))
		assert.Equal(t, models.PaymentStatusApproved, appointment.PaymentStatus)
	})
}
