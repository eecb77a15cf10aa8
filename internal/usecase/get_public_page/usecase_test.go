package get_public_page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storagetenant "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

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
	services      []*domain.Service
	professionals []*domain.Professional
}

func (f *fakeCatalogRepo) ListServices(_ context.Context, tenantID int64, onlyActive bool) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		if s.TenantID != tenantID {
			continue
		}
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListProfessionals(_ context.Context, tenantID int64) ([]*domain.Professional, error) {
	out := make([]*domain.Professional, 0, len(f.professionals))
	for _, p := range f.professionals {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	week domain.WorkingHoursWeek
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (domain.WorkingHoursWeek, error) {
	return f.week, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture() (*UseCase, *fakeCatalogRepo) {
	tenantRepo := &fakeTenantRepo{
		tenant: &domain.Tenant{
			ID:      1,
			Name:    "Salon Aurora",
			Slug:    "salon-aurora",
			Address: ptr.Ptr("Main st. 1"),
		},
	}
	catalogRepo := &fakeCatalogRepo{
		services: []*domain.Service{
			{ID: 10, TenantID: 1, ProfessionalID: 5, Name: "Haircut", DurationMinutes: 30, Price: 50, Active: true},
			{ID: 11, TenantID: 1, ProfessionalID: 5, Name: "Coloring", DurationMinutes: 90, Price: 120, Active: false},
		},
		professionals: []*domain.Professional{
			{ID: 5, TenantID: 1, Name: "Alex"},
		},
	}
	scheduleRepo := &fakeScheduleRepo{
		week: domain.WorkingHoursWeek{
			{
				TenantID: 1,
				Weekday:  1,
				Enabled:  true,
				Start:    types.TimeString("09:00"),
				End:      types.TimeString("18:00"),
				Breaks: []domain.BreakInterval{
					{Start: types.TimeString("13:00"), End: types.TimeString("14:00")},
				},
			},
			{TenantID: 1, Weekday: 0, Enabled: false},
		},
	}
	return NewUseCase(tenantRepo, catalogRepo, scheduleRepo, nopLogger{}), catalogRepo
}

func TestExecute_ReturnsPageWithActiveServicesOnly(t *testing.T) {
	uc, _ := newFixture()

	resp, err := uc.Execute(context.Background(), Request{Slug: "salon-aurora"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Salon Aurora", resp.Name)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	require.Len(t, resp.Professionals, 1)
	assert.Equal(t, "Alex", resp.Professionals[0].Name)
}

func TestExecute_IncludesWorkingHours(t *testing.T) {
	uc, _ := newFixture()

	resp, err := uc.Execute(context.Background(), Request{Slug: "salon-aurora"})
	require.NoError(t, err)

	require.Len(t, resp.WorkingHours, 2)
	monday := resp.WorkingHours[0]
	assert.Equal(t, 1, monday.Weekday)
	assert.True(t, monday.Enabled)
	assert.Equal(t, "09:00", monday.Start)
	assert.Equal(t, "18:00", monday.End)
	require.Len(t, monday.Breaks, 1)
	assert.Equal(t, "13:00", monday.Breaks[0].Start)

	sunday := resp.WorkingHours[1]
	assert.False(t, sunday.Enabled)
}

func TestExecute_TenantNotFound(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), Request{Slug: "unknown-salon"})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_EmptySlug(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
