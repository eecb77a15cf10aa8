package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storagecatalog "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storagetenant "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// 2025-10-13 — понедельник
var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeTenantRepo struct {
	tenant *domain.Tenant
}

func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	if f.tenant == nil || f.tenant.Slug != slug {
		return nil, storagetenant.ErrTenantNotFound
	}
	return f.tenant, nil
}

type fakeCatalogRepo struct {
	service *domain.Service
}

func (f *fakeCatalogRepo) GetService(_ context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.TenantID != tenantID || f.service.ID != serviceID {
		return nil, storagecatalog.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeScheduleRepo struct {
	week    domain.WorkingHoursWeek
	blocked []*domain.BlockedDate
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (domain.WorkingHoursWeek, error) {
	return f.week, nil
}

func (f *fakeScheduleRepo) GetBlockedDatesForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedDate, error) {
	return f.blocked, nil
}

type fakeClientRepo struct {
	nextID  int64
	clients map[string]*domain.Client // ключ — нормализованный телефон
}

func (f *fakeClientRepo) FindOrCreate(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.clients == nil {
		f.clients = make(map[string]*domain.Client)
	}
	if existing, ok := f.clients[c.Phone]; ok {
		return existing, nil
	}
	f.nextID++
	created := *c
	created.ID = f.nextID
	f.clients[c.Phone] = &created
	return &created, nil
}

type fakeAppointmentRepo struct {
	nextID       int64
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.TenantID != filter.TenantID {
			continue
		}
		if filter.ProfessionalID != nil && a.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if filter.StartDate != nil && a.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

type fakeNotifier struct {
	events []*notifier.Event
}

func (f *fakeNotifier) Send(_ context.Context, event *notifier.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	tenants      *fakeTenantRepo
	catalog      *fakeCatalogRepo
	schedule     *fakeScheduleRepo
	clients      *fakeClientRepo
	appointments *fakeAppointmentRepo
	notifier     *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		tenants: &fakeTenantRepo{tenant: &domain.Tenant{
			ID:            1,
			Name:          "Salon Aurora",
			Slug:          "salon-aurora",
			BufferMinutes: 15,
		}},
		catalog: &fakeCatalogRepo{service: &domain.Service{
			ID:              10,
			TenantID:        1,
			ProfessionalID:  5,
			Name:            "Haircut",
			DurationMinutes: 30,
			Price:           50,
			Active:          true,
		}},
		schedule: &fakeScheduleRepo{week: domain.WorkingHoursWeek{
			{TenantID: 1, Weekday: 1, Enabled: true, Start: "08:00", End: "10:00"},
		}},
		clients:      &fakeClientRepo{},
		appointments: &fakeAppointmentRepo{},
		notifier:     &fakeNotifier{},
	}
	f.uc = NewUseCase(f.tenants, f.catalog, f.schedule, f.clients, f.appointments, f.notifier, fakeTxManager{}, nopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		Slug:        "salon-aurora",
		ServiceID:   10,
		Date:        testDate,
		StartTime:   "08:45",
		ClientName:  "Maria Silva",
		ClientPhone: "+55 (11) 98765-4321",
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, int64(5), resp.ProfessionalID)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 50.0, resp.TotalValue)
	assert.Equal(t, types.TimeString("08:45"), resp.StartTime)
	assert.NotZero(t, resp.ID)
	assert.NotZero(t, resp.ClientID)
}

func TestExecute_PendingAppointmentOccupiesSlot(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Вторая запись на тот же слот отклоняется ещё до вставки
	req := validRequest()
	req.ClientName = "Joana Souza"
	req.ClientPhone = "+55 11 91111-2222"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{{
		ID:             99,
		TenantID:       1,
		ProfessionalID: 5,
		Date:           testDate,
		StartTime:      "08:45",
		Status:         domain.StatusCancelled,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_RejectsOffGridTime(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "08:30" // сетка с шагом 45 минут: 08:00, 08:45, 09:30
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectsClosedDay(t *testing.T) {
	f := newFixture()
	f.schedule.week = domain.WorkingHoursWeek{
		{TenantID: 1, Weekday: 1, Enabled: false},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_RejectsBlockedDate(t *testing.T) {
	f := newFixture()
	f.schedule.blocked = []*domain.BlockedDate{{TenantID: 1, Date: testDate}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_BlockedDateForOtherProfessionalIsIgnored(t *testing.T) {
	f := newFixture()
	f.schedule.blocked = []*domain.BlockedDate{{TenantID: 1, Date: testDate, ProfessionalID: ptr.Ptr(int64(99))}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_RejectsInactiveService(t *testing.T) {
	f := newFixture()
	f.catalog.service.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RejectsUnknownTenant(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Slug = "unknown"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_ReusesClientByNormalizedPhone(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Тот же телефон в другом написании и другой слот
	req := validRequest()
	req.StartTime = "09:30"
	req.ClientPhone = "5511987654321"
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty slug", func(r *Request) { r.Slug = "" }},
		{"zero serviceID", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty startTime", func(r *Request) { r.StartTime = "" }},
		{"malformed startTime", func(r *Request) { r.StartTime = "25:99" }},
		{"empty clientName", func(r *Request) { r.ClientName = "" }},
		{"invalid clientPhone", func(r *Request) { r.ClientPhone = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
