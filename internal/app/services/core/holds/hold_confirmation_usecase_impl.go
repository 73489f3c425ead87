package holds

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/dto/responses"
	"onterapi-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type holdConfirmationUsecase struct {
	HoldRepository        contracts.HoldRepository
	AppointmentRepository contracts.AppointmentRepository
	ClinicRepository      contracts.ClinicRepository
	ServiceTypeRepository contracts.ServiceTypeRepository
	AuditSink             contracts.AuditSink
	Log                   *zap.Logger
}

var (
	holdConfirmationUsecaseInstance contracts.HoldConfirmationUsecase
	onceHoldConfirmationUsecase     sync.Once
)

func NewHoldConfirmationUsecase(
	holdRepository contracts.HoldRepository,
	appointmentRepository contracts.AppointmentRepository,
	clinicRepository contracts.ClinicRepository,
	serviceTypeRepository contracts.ServiceTypeRepository,
	auditSink contracts.AuditSink,
	logger *zap.Logger,
) contracts.HoldConfirmationUsecase {
	onceHoldConfirmationUsecase.Do(func() {
		holdConfirmationUsecaseInstance = &holdConfirmationUsecase{
			HoldRepository:        holdRepository,
			AppointmentRepository: appointmentRepository,
			ClinicRepository:      clinicRepository,
			ServiceTypeRepository: serviceTypeRepository,
			AuditSink:             auditSink,
			Log:                   logger,
		}
	})
	return holdConfirmationUsecaseInstance
}

// Confirm converts a pending hold into an appointment. The appointment is
// created before the hold is flipped, so a crash in between leaves an orphan
// appointment that the next retry with the same idempotency key adopts
// instead of duplicating.
func (uc *holdConfirmationUsecase) Confirm(ctx context.Context, request *requests.ConfirmHold) (*responses.HoldConfirmation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("Confirming booking hold",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHoldIDKey, request.HoldID),
		zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		zap.String(constvars.LoggingIdempotencyKey, request.IdempotencyKey),
	)

	clinic, err := uc.ClinicRepository.FindByTenant(ctx, request.TenantID, request.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrClinicNotFound(nil)
	}

	hold, err := uc.HoldRepository.FindByID(ctx, request.TenantID, request.HoldID)
	if err != nil {
		return nil, err
	}
	if hold == nil || hold.ClinicID != request.ClinicID {
		return nil, exceptions.ErrHoldNotFound(nil)
	}

	if hold.Status == models.HoldStatusConfirmed {
		return uc.replayConfirmation(ctx, hold, request)
	}
	if hold.Status.IsTerminal() {
		return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldTerminalStatus)
	}

	// A crash after appointment creation but before the hold flip leaves an
	// orphan. Adopt it when the idempotency key matches.
	orphan, err := uc.AppointmentRepository.FindByHoldID(ctx, hold.ID)
	if err != nil {
		return nil, err
	}
	if orphan != nil {
		return uc.adoptOrphan(ctx, hold, orphan, request)
	}

	now := time.Now().UTC()
	if now.After(hold.TTLExpiresAt) || now.After(hold.Start) {
		return nil, uc.expireLazily(ctx, hold)
	}

	serviceType, err := uc.ServiceTypeRepository.FindByID(ctx, request.ClinicID, hold.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	if serviceType == nil {
		return nil, exceptions.ErrServiceTypeNotFound(nil)
	}
	minAdvanceMinutes := clinic.HoldSettings.MinAdvanceMinutes
	if serviceType.MinAdvanceMinutes > minAdvanceMinutes {
		minAdvanceMinutes = serviceType.MinAdvanceMinutes
	}
	if hold.Start.Sub(now) < time.Duration(minAdvanceMinutes)*time.Minute {
		return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevMinAdvanceViolated)
	}

	if err := uc.checkOverlaps(ctx, hold, clinic); err != nil {
		return nil, err
	}

	if request.PaymentTransactionID == "" {
		return nil, exceptions.ErrMissingPaymentTransactionID(nil)
	}

	appointment := &models.Appointment{
		TenantID:             hold.TenantID,
		ClinicID:             hold.ClinicID,
		HoldID:               hold.ID,
		ProfessionalID:       hold.ProfessionalID,
		PatientID:            hold.PatientID,
		ServiceTypeID:        hold.ServiceTypeID,
		Start:                hold.Start,
		End:                  hold.End,
		PaymentStatus:        models.PaymentStatusApproved,
		PaymentTransactionID: request.PaymentTransactionID,
		ConfirmedAt:          now,
		ConfirmedBy:          request.ConfirmedBy,
		Metadata: map[string]interface{}{
			constvars.MetadataKeyIdempotencyKey: request.IdempotencyKey,
		},
	}
	appointment, err = uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.flipHold(ctx, hold, appointment, request)
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		// Lost the flip race. If the winner used the same idempotency key
		// this is still a successful replay; the appointment created above
		// stays behind as an inspectable orphan.
		uc.Log.Warn("Hold was confirmed concurrently, replaying",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHoldIDKey, hold.ID),
		)
		current, findErr := uc.HoldRepository.FindByID(ctx, request.TenantID, request.HoldID)
		if findErr != nil {
			return nil, findErr
		}
		if current == nil || current.Status != models.HoldStatusConfirmed {
			return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldTerminalStatus)
		}
		return uc.replayConfirmation(ctx, current, request)
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    hold.TenantID,
		ClinicID:    hold.ClinicID,
		Event:       constvars.AuditEventHoldConfirmed,
		PerformedBy: request.ConfirmedBy,
		Detail: map[string]interface{}{
			"holdId":        hold.ID,
			"appointmentId": appointment.ID,
			"transactionId": request.PaymentTransactionID,
		},
	})

	uc.Log.Info("Booking hold confirmed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHoldIDKey, hold.ID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return buildConfirmation(appointment), nil
}

// replayConfirmation answers a retry against an already-confirmed hold. Only
// the idempotency key that did the original confirmation may replay it.
func (uc *holdConfirmationUsecase) replayConfirmation(ctx context.Context, hold *models.Hold, request *requests.ConfirmHold) (*responses.HoldConfirmation, error) {
	confirmation := hold.Metadata.Confirmation
	if confirmation == nil || confirmation.IdempotencyKey != request.IdempotencyKey {
		return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldIdempotencyMismatch)
	}

	appointment, err := uc.AppointmentRepository.FindByHoldID(ctx, hold.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	return buildConfirmation(appointment), nil
}

func (uc *holdConfirmationUsecase) adoptOrphan(ctx context.Context, hold *models.Hold, orphan *models.Appointment, request *requests.ConfirmHold) (*responses.HoldConfirmation, error) {
	storedKey, _ := orphan.Metadata[constvars.MetadataKeyIdempotencyKey].(string)
	if storedKey != request.IdempotencyKey {
		return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldIdempotencyMismatch)
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Warn("Adopting orphan appointment for hold",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHoldIDKey, hold.ID),
		zap.String(constvars.LoggingAppointmentIDKey, orphan.ID),
	)

	confirmed, err := uc.flipHold(ctx, hold, orphan, request)
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		// Someone else finished the transition in the meantime.
		current, findErr := uc.HoldRepository.FindByID(ctx, request.TenantID, request.HoldID)
		if findErr != nil {
			return nil, findErr
		}
		if current == nil || current.Status != models.HoldStatusConfirmed {
			return nil, exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldTerminalStatus)
		}
		return uc.replayConfirmation(ctx, current, request)
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    hold.TenantID,
		ClinicID:    hold.ClinicID,
		Event:       constvars.AuditEventHoldConfirmed,
		PerformedBy: request.ConfirmedBy,
		Detail: map[string]interface{}{
			"holdId":        hold.ID,
			"appointmentId": orphan.ID,
			"transactionId": orphan.PaymentTransactionID,
			"recovered":     true,
		},
	})
	return buildConfirmation(orphan), nil
}

func (uc *holdConfirmationUsecase) flipHold(ctx context.Context, hold *models.Hold, appointment *models.Appointment, request *requests.ConfirmHold) (*models.Hold, error) {
	metadata := hold.Metadata
	metadata.Confirmation = &models.ConfirmationRecord{
		IdempotencyKey: request.IdempotencyKey,
		AppointmentID:  appointment.ID,
		ConfirmedBy:    request.ConfirmedBy,
		ConfirmedAt:    appointment.ConfirmedAt,
	}

	patch := &models.Hold{
		AppointmentID:  appointment.ID,
		LastModifiedBy: request.ConfirmedBy,
		Metadata:       metadata,
	}
	return uc.HoldRepository.UpdateStatus(ctx, hold.ID, models.HoldStatusPending, models.HoldStatusConfirmed, patch)
}

// expireLazily performs the soft-TTL transition in place of the sweep, then
// rejects the confirmation.
func (uc *holdConfirmationUsecase) expireLazily(ctx context.Context, hold *models.Hold) error {
	expired, err := uc.HoldRepository.UpdateStatus(ctx, hold.ID, models.HoldStatusPending, models.HoldStatusExpired, nil)
	if err != nil {
		return err
	}
	if expired != nil {
		uc.AuditSink.Register(ctx, &models.AuditEntry{
			TenantID: hold.TenantID,
			ClinicID: hold.ClinicID,
			Event:    constvars.AuditEventHoldExpired,
			Detail: map[string]interface{}{
				"holdId":       hold.ID,
				"ttlExpiresAt": hold.TTLExpiresAt,
				"start":        hold.Start,
			},
		})
	}
	return exceptions.ErrHoldConfirmationNotAllowed(constvars.ErrDevHoldExpired)
}

// checkOverlaps guards the professional's window across every clinic of the
// tenant, against holds first and then against confirmed appointments.
func (uc *holdConfirmationUsecase) checkOverlaps(ctx context.Context, hold *models.Hold, clinic *models.Clinic) error {
	overlapping, err := uc.HoldRepository.FindOverlapping(ctx, &contracts.HoldOverlapQuery{
		TenantID:       hold.TenantID,
		ProfessionalID: hold.ProfessionalID,
		Start:          hold.Start,
		End:            hold.End,
		ExcludeHoldID:  hold.ID,
		Statuses:       []models.HoldStatus{models.HoldStatusPending, models.HoldStatusConfirmed},
	})
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.Status == models.HoldStatusConfirmed {
			return exceptions.ErrHoldAlreadyExists(nil)
		}
		if !clinic.HoldSettings.AllowOverbooking {
			return exceptions.ErrHoldAlreadyExists(nil)
		}
	}

	appointments, err := uc.AppointmentRepository.FindOverlapping(ctx, &contracts.AppointmentOverlapQuery{
		TenantID:       hold.TenantID,
		ProfessionalID: hold.ProfessionalID,
		Start:          hold.Start,
		End:            hold.End,
	})
	if err != nil {
		return err
	}
	if len(appointments) > 0 {
		return exceptions.ErrHoldAlreadyExists(nil)
	}
	return nil
}

func buildConfirmation(appointment *models.Appointment) *responses.HoldConfirmation {
	return &responses.HoldConfirmation{
		AppointmentID:        appointment.ID,
		ClinicID:             appointment.ClinicID,
		HoldID:               appointment.HoldID,
		PaymentTransactionID: appointment.PaymentTransactionID,
		ConfirmedAt:          appointment.ConfirmedAt,
		PaymentStatus:        appointment.PaymentStatus,
	}
}
