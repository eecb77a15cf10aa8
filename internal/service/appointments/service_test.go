package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	nextID int64
	byID   map[int64]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[int64]*domain.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	for _, existing := range f.byID {
		if existing.TenantID == appt.TenantID &&
			existing.ProfessionalID == appt.ProfessionalID &&
			existing.Date.Equal(appt.Date) &&
			existing.StartTime == appt.StartTime &&
			!existing.IsCancelled() {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}
	f.nextID++
	created := *appt
	created.ID = f.nextID
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok || appt.TenantID != tenantID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.TenantID != filter.TenantID {
			continue
		}
		if filter.StartDate != nil && a.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, tenantID, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.byID[id]
	if !ok || appt.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Complete(_ context.Context, tenantID, id int64, paymentStatus domain.PaymentStatus, totalValue float64) error {
	appt, ok := f.byID[id]
	if !ok || appt.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = domain.StatusCompleted
	appt.PaymentStatus = paymentStatus
	appt.TotalValue = totalValue
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, tenantID, id int64, reason string) error {
	appt, ok := f.byID[id]
	if !ok || appt.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	return nil
}

func (f *fakeAppointmentRepo) UpdateNotes(_ context.Context, tenantID, id int64, notes string) error {
	appt, ok := f.byID[id]
	if !ok || appt.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Notes = &notes
	return nil
}

type fakeCatalogRepo struct {
	service *domain.Service
}

func (f *fakeCatalogRepo) GetService(_ context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.TenantID != tenantID || f.service.ID != serviceID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeClientRepo struct {
	nextID int64
	byID   map[int64]*domain.Client
}

func (f *fakeClientRepo) FindOrCreate(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.byID == nil {
		f.byID = make(map[int64]*domain.Client)
	}
	for _, existing := range f.byID {
		if existing.TenantID == c.TenantID && existing.Phone == c.Phone {
			return existing, nil
		}
	}
	f.nextID++
	created := *c
	created.ID = f.nextID
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Client, error) {
	c, ok := f.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

type fakeTenantRepo struct {
	tenant *domain.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	return f.tenant, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Send(context.Context, *notifier.Event) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	catalog      *fakeCatalogRepo
	clients      *fakeClientRepo
}

func newFixture() *fixture {
	f := &fixture{
		appointments: newFakeAppointmentRepo(),
		catalog: &fakeCatalogRepo{service: &domain.Service{
			ID:              10,
			TenantID:        1,
			ProfessionalID:  5,
			Name:            "Haircut",
			DurationMinutes: 30,
			Price:           50,
			Active:          true,
		}},
		clients: &fakeClientRepo{},
	}
	tenants := &fakeTenantRepo{tenant: &domain.Tenant{ID: 1, Name: "Salon Aurora", Slug: "salon-aurora"}}
	f.svc = NewService(f.appointments, f.catalog, f.clients, tenants, fakeNotifier{}, fakeTxManager{}, nopLogger{})
	return f
}

func (f *fixture) seed(status domain.AppointmentStatus, payment domain.PaymentStatus, total, deposit float64) *domain.Appointment {
	f.appointments.nextID++
	appt := &domain.Appointment{
		ID:              f.appointments.nextID,
		TenantID:        1,
		ClientID:        1,
		ServiceID:       10,
		ProfessionalID:  5,
		Date:            testDate,
		StartTime:       "09:00",
		Status:          status,
		PaymentStatus:   payment,
		TotalValue:      total,
		DepositValue:    deposit,
		ServiceName:     "Haircut",
		DurationMinutes: 30,
	}
	f.appointments.byID[appt.ID] = appt
	return appt
}

func TestCreate_AdminAppointmentIsConfirmed(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateAppointmentRequest{
		TenantID:    1,
		ServiceID:   10,
		Date:        testDate,
		StartTime:   "14:00",
		ClientName:  "Maria Silva",
		ClientPhone: "11987654321",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 50.0, resp.TotalValue)
}

func TestCreate_SlotConflict(t *testing.T) {
	f := newFixture()
	req := &models.CreateAppointmentRequest{
		TenantID:    1,
		ServiceID:   10,
		Date:        testDate,
		StartTime:   "14:00",
		ClientName:  "Maria Silva",
		ClientPhone: "11987654321",
	}

	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_PartialPaymentContributesDeposit(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateAppointmentRequest{
		TenantID:      1,
		ServiceID:     10,
		Date:          testDate,
		StartTime:     "14:00",
		ClientName:    "Maria Silva",
		ClientPhone:   "11987654321",
		PaymentStatus: ptr.Ptr("partial"),
		DepositValue:  ptr.Ptr(30.0),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentPartial), resp.PaymentStatus)
	assert.Equal(t, 30.0, resp.DepositValue)

	// Подтверждённая запись с частичной оплатой даёт в выручку предоплату
	stats, err := f.svc.MonthlyStats(context.Background(), 1, 2025, 10)
	require.NoError(t, err)
	assert.Equal(t, 30.0, stats.Revenue)
}

func TestCreate_PaymentDefaultsToPending(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateAppointmentRequest{
		TenantID:    1,
		ServiceID:   10,
		Date:        testDate,
		StartTime:   "14:00",
		ClientName:  "Maria Silva",
		ClientPhone: "11987654321",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 0.0, resp.DepositValue)
}

func TestCreate_InvalidPaymentInput(t *testing.T) {
	f := newFixture()
	base := func() *models.CreateAppointmentRequest {
		return &models.CreateAppointmentRequest{
			TenantID:    1,
			ServiceID:   10,
			Date:        testDate,
			StartTime:   "14:00",
			ClientName:  "Maria Silva",
			ClientPhone: "11987654321",
		}
	}

	req := base()
	req.PaymentStatus = ptr.Ptr("refunded")
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = base()
	req.DepositValue = ptr.Ptr(-10.0)
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		wantErr error
	}{
		{"pending can be confirmed", domain.StatusPending, nil},
		{"confirmed cannot be confirmed again", domain.StatusConfirmed, ErrInvalidTransition},
		{"completed is terminal", domain.StatusCompleted, ErrInvalidTransition},
		{"cancelled is terminal", domain.StatusCancelled, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			appt := f.seed(tt.from, domain.PaymentPending, 50, 0)

			resp, err := f.svc.Confirm(context.Background(), 1, appt.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		})
	}
}

func TestComplete_Transitions(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusConfirmed, domain.PaymentPartial, 50, 20)

	resp, err := f.svc.Complete(context.Background(), 1, appt.ID, &models.CompleteAppointmentRequest{
		PaymentStatus: "paid",
		TotalValue:    ptr.Ptr(80.0),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, 80.0, resp.TotalValue)
}

func TestComplete_PendingCannotBeCompleted(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusPending, domain.PaymentPending, 50, 0)

	_, err := f.svc.Complete(context.Background(), 1, appt.ID, &models.CompleteAppointmentRequest{PaymentStatus: "paid"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_DefaultsToServicePrice(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusConfirmed, domain.PaymentPending, 50, 0)

	resp, err := f.svc.Complete(context.Background(), 1, appt.ID, &models.CompleteAppointmentRequest{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.TotalValue)
}

func TestCancel_TerminalStatesRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			appt := f.seed(status, domain.PaymentPending, 50, 0)

			_, err := f.svc.Cancel(context.Background(), 1, appt.ID, &models.CancelAppointmentRequest{Reason: "client request"})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCancel_StoresReason(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusConfirmed, domain.PaymentPending, 50, 0)

	resp, err := f.svc.Cancel(context.Background(), 1, appt.ID, &models.CancelAppointmentRequest{Reason: "no-show"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "no-show", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestMonthlyStats_RevenueRules(t *testing.T) {
	f := newFixture()
	f.seed(domain.StatusCompleted, domain.PaymentPaid, 100, 0)    // +100
	f.seed(domain.StatusConfirmed, domain.PaymentPartial, 90, 30) // +30 (предоплата)
	f.seed(domain.StatusConfirmed, domain.PaymentPending, 70, 0)  // +0
	f.seed(domain.StatusPending, domain.PaymentPending, 60, 0)    // +0
	f.seed(domain.StatusCancelled, domain.PaymentPending, 50, 0)  // +0

	stats, err := f.svc.MonthlyStats(context.Background(), 1, 2025, 10)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 130.0, stats.Revenue)
	assert.InDelta(t, 25.0, stats.CompletionRate, 0.01)
}

func TestMonthlyStats_InvalidMonth(t *testing.T) {
	f := newFixture()

	_, err := f.svc.MonthlyStats(context.Background(), 1, 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateNotes(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusPending, domain.PaymentPending, 50, 0)

	resp, err := f.svc.UpdateNotes(context.Background(), 1, appt.ID, &models.UpdateNotesRequest{Notes: "allergic to ammonia"})
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "allergic to ammonia", *resp.Notes)
}

func TestUpdateNotes_TooLong(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusPending, domain.PaymentPending, 50, 0)

	_, err := f.svc.UpdateNotes(context.Background(), 1, appt.ID, &models.UpdateNotesRequest{
		Notes: strings.Repeat("a", domain.MaxNotesLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture()
	appt := f.seed(domain.StatusConfirmed, domain.PaymentPending, 50, 0)

	_, err := f.svc.Cancel(context.Background(), 1, appt.ID, &models.CancelAppointmentRequest{
		Reason: strings.Repeat("a", domain.MaxCancellationReasonLen+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
