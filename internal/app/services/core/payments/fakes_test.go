package payments

import (
	"context"
	"errors"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
)

// In-memory collaborators shared by the usecase tests in this package.

type fakeAppointmentRepo struct {
	appointments  map[string]*models.Appointment
	statusUpdates []models.PaymentStatus
	patchErr      error
}

func newFakeAppointmentRepo(appointments ...*models.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: map[string]*models.Appointment{}}
	for _, appointment := range appointments {
		repo.appointments[appointment.ID] = appointment
	}
	return repo
}

func (r *fakeAppointmentRepo) CreateAppointment(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if appointment.ID == "" {
		appointment.ID = "generated-appointment-id"
	}
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	return r.appointments[appointmentID], nil
}

func (r *fakeAppointmentRepo) FindByHoldID(_ context.Context, holdID string) (*models.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.HoldID == holdID {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByPaymentTransactionID(_ context.Context, transactionID string) (*models.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.PaymentTransactionID == transactionID {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindOverlapping(_ context.Context, query *contracts.AppointmentOverlapQuery) ([]models.Appointment, error) {
	var matches []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.TenantID == query.TenantID &&
			appointment.ProfessionalID == query.ProfessionalID &&
			appointment.Start.Before(query.End) && appointment.End.After(query.Start) {
			matches = append(matches, *appointment)
		}
	}
	return matches, nil
}

func (r *fakeAppointmentRepo) UpdatePaymentStatus(_ context.Context, appointmentID string, status models.PaymentStatus) error {
	appointment, exists := r.appointments[appointmentID]
	if !exists {
		return errors.New("appointment not found")
	}
	appointment.PaymentStatus = status
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

func (r *fakeAppointmentRepo) PatchMetadata(_ context.Context, appointmentID string, patch map[string]interface{}) error {
	if r.patchErr != nil {
		return r.patchErr
	}
	appointment, exists := r.appointments[appointmentID]
	if !exists {
		return errors.New("appointment not found")
	}
	if appointment.Metadata == nil {
		appointment.Metadata = map[string]interface{}{}
	}
	for key, value := range patch {
		appointment.Metadata[key] = value
	}
	return nil
}

type fakeHoldRepo struct {
	holds         map[string]*models.Hold
	statusUpdates map[string]models.PaymentStatus
}

func newFakeHoldRepo(holds ...*models.Hold) *fakeHoldRepo {
	repo := &fakeHoldRepo{holds: map[string]*models.Hold{}, statusUpdates: map[string]models.PaymentStatus{}}
	for _, hold := range holds {
		repo.holds[hold.ID] = hold
	}
	return repo
}

func (r *fakeHoldRepo) CreateHold(_ context.Context, hold *models.Hold) (*models.Hold, error) {
	r.holds[hold.ID] = hold
	return hold, nil
}

func (r *fakeHoldRepo) FindByID(_ context.Context, tenantID, holdID string) (*models.Hold, error) {
	hold, exists := r.holds[holdID]
	if !exists || hold.TenantID != tenantID {
		return nil, nil
	}
	return hold, nil
}

func (r *fakeHoldRepo) FindByIdempotencyKey(_ context.Context, tenantID, clinicID, idempotencyKey string) (*models.Hold, error) {
	for _, hold := range r.holds {
		if hold.TenantID == tenantID && hold.ClinicID == clinicID && hold.IdempotencyKey == idempotencyKey {
			return hold, nil
		}
	}
	return nil, nil
}

func (r *fakeHoldRepo) FindActiveByClinic(_ context.Context, tenantID, clinicID string) ([]models.Hold, error) {
	var active []models.Hold
	for _, hold := range r.holds {
		if hold.TenantID == tenantID && hold.ClinicID == clinicID &&
			(hold.Status == models.HoldStatusPending || hold.Status == models.HoldStatusConfirmed) {
			active = append(active, *hold)
		}
	}
	return active, nil
}

func (r *fakeHoldRepo) FindOverlapping(_ context.Context, query *contracts.HoldOverlapQuery) ([]models.Hold, error) {
	var matches []models.Hold
	for _, hold := range r.holds {
		if hold.ID == query.ExcludeHoldID {
			continue
		}
		if hold.TenantID != query.TenantID || hold.ProfessionalID != query.ProfessionalID {
			continue
		}
		if !hold.Start.Before(query.End) || !hold.End.After(query.Start) {
			continue
		}
		if len(query.Statuses) > 0 {
			allowed := false
			for _, status := range query.Statuses {
				if hold.Status == status {
					allowed = true
					break
				}
			}
			if !allowed {
				continue
			}
		}
		matches = append(matches, *hold)
	}
	return matches, nil
}

func (r *fakeHoldRepo) UpdateStatus(_ context.Context, holdID string, fromStatus, toStatus models.HoldStatus, patch *models.Hold) (*models.Hold, error) {
	hold, exists := r.holds[holdID]
	if !exists || hold.Status != fromStatus {
		return nil, nil
	}
	hold.Status = toStatus
	hold.UpdatedAt = time.Now().UTC()
	if patch != nil {
		if patch.AppointmentID != "" {
			hold.AppointmentID = patch.AppointmentID
		}
		if patch.CancelReason != "" {
			hold.CancelReason = patch.CancelReason
		}
		if patch.LastModifiedBy != "" {
			hold.LastModifiedBy = patch.LastModifiedBy
		}
		if patch.Metadata.Confirmation != nil || patch.Metadata.Overbooking != nil || patch.Metadata.Extra != nil {
			hold.Metadata = patch.Metadata
		}
	}
	return hold, nil
}

func (r *fakeHoldRepo) PatchMetadata(_ context.Context, holdID string, metadata models.HoldMetadata) (*models.Hold, error) {
	hold, exists := r.holds[holdID]
	if !exists {
		return nil, nil
	}
	hold.Metadata = metadata
	return hold, nil
}

func (r *fakeHoldRepo) UpdatePaymentStatus(_ context.Context, holdID string, status models.PaymentStatus) error {
	hold, exists := r.holds[holdID]
	if !exists {
		return errors.New("hold not found")
	}
	hold.PaymentStatus = status
	r.statusUpdates[holdID] = status
	return nil
}

func (r *fakeHoldRepo) FindDuePending(_ context.Context, now time.Time, limit int) ([]models.Hold, error) {
	var due []models.Hold
	for _, hold := range r.holds {
		if hold.Status != models.HoldStatusPending {
			continue
		}
		if hold.TTLExpiresAt.After(now) && hold.Start.After(now) {
			continue
		}
		due = append(due, *hold)
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

type fakeSettingsRepo struct {
	settings *models.PaymentSettings
	err      error
}

func (r *fakeSettingsRepo) FindLatestPaymentSettings(_ context.Context, _ string) (*models.PaymentSettings, error) {
	return r.settings, r.err
}

type fakeAuditSink struct {
	entries []models.AuditEntry
}

func (s *fakeAuditSink) Register(_ context.Context, entry *models.AuditEntry) {
	s.entries = append(s.entries, *entry)
}

func (s *fakeAuditSink) countByEvent(event string) int {
	count := 0
	for _, entry := range s.entries {
		if entry.Event == event {
			count++
		}
	}
	return count
}

type fakePublisher struct {
	lifecycleEvents   []models.PaymentLifecycleEvent
	overbookingEvents []models.OverbookingReviewedEvent
	err               error
}

func (p *fakePublisher) PublishPaymentLifecycle(_ context.Context, event *models.PaymentLifecycleEvent) error {
	if p.err != nil {
		return p.err
	}
	p.lifecycleEvents = append(p.lifecycleEvents, *event)
	return nil
}

func (p *fakePublisher) PublishOverbookingReviewed(_ context.Context, event *models.OverbookingReviewedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.overbookingEvents = append(p.overbookingEvents, *event)
	return nil
}

type fakePayoutRequester struct {
	requests []contracts.PayoutRequest
	err      error
}

func (p *fakePayoutRequester) RequestPayout(_ context.Context, request *contracts.PayoutRequest) error {
	if p.err != nil {
		return p.err
	}
	p.requests = append(p.requests, *request)
	return nil
}

type fakeNotifier struct {
	events []models.PaymentLifecycleEvent
	err    error
}

func (n *fakeNotifier) NotifyPaymentEvent(_ context.Context, event *models.PaymentLifecycleEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, *event)
	return nil
}

type fakeArchive struct {
	stored [][]byte
	err    error
}

func (a *fakeArchive) StorePayload(_ context.Context, _, transactionID string, payload []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.stored = append(a.stored, payload)
	return "webhooks/" + transactionID, nil
}
