package tenantconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeTenantRepo struct {
	tenant *domain.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	if f.tenant == nil || f.tenant.ID != id {
		return nil, tenantRepo.ErrTenantNotFound
	}
	copied := *f.tenant
	return &copied, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *domain.Tenant) error {
	copied := *t
	f.tenant = &copied
	return nil
}

type fakeScheduleRepo struct {
	week    domain.WorkingHoursWeek
	blocked []*domain.BlockedDate
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (domain.WorkingHoursWeek, error) {
	return f.week, nil
}

func (f *fakeScheduleRepo) UpsertWorkingHours(_ context.Context, _ int64, week domain.WorkingHoursWeek) error {
	f.week = week
	return nil
}

func (f *fakeScheduleRepo) GetBlockedDates(_ context.Context, _ int64) ([]*domain.BlockedDate, error) {
	return f.blocked, nil
}

func (f *fakeScheduleRepo) ReplaceBlockedDates(_ context.Context, _ int64, blocked []*domain.BlockedDate) error {
	f.blocked = blocked
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeTenantRepo, *fakeScheduleRepo) {
	tenants := &fakeTenantRepo{tenant: &domain.Tenant{
		ID:                      1,
		Name:                    "Salon Aurora",
		Slug:                    "salon-aurora",
		BufferMinutes:           15,
		CancellationWindowHours: 24,
	}}
	schedule := &fakeScheduleRepo{}
	return NewService(tenants, schedule, fakeTxManager{}, nopLogger{}), tenants, schedule
}

func TestGet_ReturnsFullConfig(t *testing.T) {
	svc, _, schedule := newService()
	schedule.week = domain.WorkingHoursWeek{
		{TenantID: 1, Weekday: 1, Enabled: true, Start: "09:00", End: "18:00"},
	}

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "salon-aurora", resp.Slug)
	assert.Equal(t, 15, resp.BufferMinutes)
	require.Len(t, resp.WorkingHours, 1)
	assert.Equal(t, "09:00", resp.WorkingHours[0].Start)
}

func TestGet_UnknownTenant(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, tenants, _ := newService()

	resp, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		BufferMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.BufferMinutes)
	// Непереданные поля не изменились
	assert.Equal(t, "Salon Aurora", tenants.tenant.Name)
	assert.Equal(t, 24, tenants.tenant.CancellationWindowHours)
	// Slug неизменяем
	assert.Equal(t, "salon-aurora", resp.Slug)
}

func TestUpdate_ReplacesWorkingHours(t *testing.T) {
	svc, _, schedule := newService()

	resp, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		WorkingHours: []models.WorkingHoursDay{
			{Weekday: 1, Enabled: true, Start: "08:00", End: "17:00",
				Breaks: []models.BreakInterval{{Start: "12:00", End: "13:00"}}},
			{Weekday: 0, Enabled: false},
		},
	})
	require.NoError(t, err)

	require.Len(t, schedule.week, 2)
	require.Len(t, resp.WorkingHours, 2)
}

func TestUpdate_RejectsInvalidWorkingHours(t *testing.T) {
	tests := []struct {
		name string
		day  models.WorkingHoursDay
	}{
		{"start after end", models.WorkingHoursDay{Weekday: 1, Enabled: true, Start: "18:00", End: "09:00"}},
		{"break outside window", models.WorkingHoursDay{Weekday: 1, Enabled: true, Start: "09:00", End: "12:00",
			Breaks: []models.BreakInterval{{Start: "13:00", End: "14:00"}}}},
		{"weekday out of range", models.WorkingHoursDay{Weekday: 7, Enabled: true, Start: "09:00", End: "18:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService()
			_, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
				WorkingHours: []models.WorkingHoursDay{tt.day},
			})
			assert.ErrorIs(t, err, ErrInvalidWorkingHours)
		})
	}
}

func TestUpdate_ReplacesBlockedDates(t *testing.T) {
	svc, _, schedule := newService()
	schedule.blocked = []*domain.BlockedDate{{TenantID: 1}}

	resp, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		BlockedDates: []models.BlockedDateEntry{
			{Date: "2025-12-25", Reason: ptr.Ptr("holiday")},
			{Date: "2025-12-31", ProfessionalID: ptr.Ptr(int64(5))},
		},
	})
	require.NoError(t, err)

	require.Len(t, schedule.blocked, 2)
	require.Len(t, resp.BlockedDates, 2)
	assert.Equal(t, "2025-12-25", resp.BlockedDates[0].Date)
}

func TestUpdate_RejectsMalformedBlockedDate(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		BlockedDates: []models.BlockedDateEntry{{Date: "25/12/2025"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RejectsNegativePolicy(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		BufferMinutes: ptr.Ptr(-5),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RejectsExcessiveBuffer(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Update(context.Background(), 1, &models.UpdateConfigRequest{
		BufferMinutes: ptr.Ptr(domain.MaxBufferMinutes + 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
