package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeCatalogRepo struct {
	nextID        int64
	services      map[int64]*domain.Service
	professionals map[int64]*domain.Professional

	serviceHasAppointments  map[int64]bool
	professionalHasServices map[int64]bool
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		services:                make(map[int64]*domain.Service),
		professionals:           make(map[int64]*domain.Professional),
		serviceHasAppointments:  make(map[int64]bool),
		professionalHasServices: make(map[int64]bool),
	}
}

func (f *fakeCatalogRepo) CreateService(_ context.Context, s *domain.Service) (*domain.Service, error) {
	f.nextID++
	created := *s
	created.ID = f.nextID
	f.services[created.ID] = &created
	return &created, nil
}

func (f *fakeCatalogRepo) GetService(_ context.Context, tenantID, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok || s.TenantID != tenantID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCatalogRepo) ListServices(_ context.Context, tenantID int64, onlyActive bool) ([]*domain.Service, error) {
	var out []*domain.Service
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

func (f *fakeCatalogRepo) UpdateService(_ context.Context, s *domain.Service) error {
	if _, ok := f.services[s.ID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	copied := *s
	f.services[s.ID] = &copied
	return nil
}

func (f *fakeCatalogRepo) DeleteService(_ context.Context, tenantID, id int64) error {
	s, ok := f.services[id]
	if !ok || s.TenantID != tenantID {
		return catalogRepo.ErrServiceNotFound
	}
	if f.serviceHasAppointments[id] {
		return catalogRepo.ErrHasDependencies
	}
	delete(f.services, id)
	return nil
}

func (f *fakeCatalogRepo) CreateProfessional(_ context.Context, p *domain.Professional) (*domain.Professional, error) {
	f.nextID++
	created := *p
	created.ID = f.nextID
	f.professionals[created.ID] = &created
	return &created, nil
}

func (f *fakeCatalogRepo) GetProfessional(_ context.Context, tenantID, id int64) (*domain.Professional, error) {
	p, ok := f.professionals[id]
	if !ok || p.TenantID != tenantID {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeCatalogRepo) ListProfessionals(_ context.Context, tenantID int64) ([]*domain.Professional, error) {
	var out []*domain.Professional
	for _, p := range f.professionals {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateProfessional(_ context.Context, p *domain.Professional) error {
	if _, ok := f.professionals[p.ID]; !ok {
		return catalogRepo.ErrProfessionalNotFound
	}
	copied := *p
	f.professionals[p.ID] = &copied
	return nil
}

func (f *fakeCatalogRepo) DeleteProfessional(_ context.Context, tenantID, id int64) error {
	p, ok := f.professionals[id]
	if !ok || p.TenantID != tenantID {
		return catalogRepo.ErrProfessionalNotFound
	}
	if f.professionalHasServices[id] {
		return catalogRepo.ErrHasDependencies
	}
	delete(f.professionals, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeCatalogRepo) {
	repo := newFakeCatalogRepo()
	return NewService(repo, nopLogger{}), repo
}

func seedProfessional(repo *fakeCatalogRepo) *domain.Professional {
	repo.nextID++
	p := &domain.Professional{ID: repo.nextID, TenantID: 1, Name: "Ana"}
	repo.professionals[p.ID] = p
	return p
}

func TestCreateService(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	resp, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID:  pro.ID,
		Name:            "Haircut",
		DurationMinutes: 30,
		Price:           50,
	})
	require.NoError(t, err)

	assert.True(t, resp.Active, "new service must be offerable")
	assert.Equal(t, pro.ID, resp.ProfessionalID)
}

func TestCreateService_UnknownProfessional(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID:  404,
		Name:            "Haircut",
		DurationMinutes: 30,
		Price:           50,
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestCreateService_Validation(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"empty name", models.CreateServiceRequest{ProfessionalID: pro.ID, DurationMinutes: 30, Price: 50}},
		{"duration too short", models.CreateServiceRequest{ProfessionalID: pro.ID, Name: "x", DurationMinutes: 1, Price: 50}},
		{"duration too long", models.CreateServiceRequest{ProfessionalID: pro.ID, Name: "x", DurationMinutes: 600, Price: 50}},
		{"negative price", models.CreateServiceRequest{ProfessionalID: pro.ID, Name: "x", DurationMinutes: 30, Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateService(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateService_PartialUpdate(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	created, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID: pro.ID, Name: "Haircut", DurationMinutes: 30, Price: 50,
	})
	require.NoError(t, err)

	resp, err := svc.UpdateService(context.Background(), 1, created.ID, &models.UpdateServiceRequest{
		Price:  ptr.Ptr(60.0),
		Active: ptr.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, resp.Price)
	assert.False(t, resp.Active)
	assert.Equal(t, "Haircut", resp.Name)
}

func TestDeleteService_WithAppointments(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	created, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID: pro.ID, Name: "Haircut", DurationMinutes: 30, Price: 50,
	})
	require.NoError(t, err)
	repo.serviceHasAppointments[created.ID] = true

	err = svc.DeleteService(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, ErrHasDependencies)
}

func TestDeleteProfessional_WithServices(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)
	repo.professionalHasServices[pro.ID] = true

	err := svc.DeleteProfessional(context.Background(), 1, pro.ID)
	assert.ErrorIs(t, err, ErrHasDependencies)
}

func TestDeleteProfessional(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	err := svc.DeleteProfessional(context.Background(), 1, pro.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProfessional(context.Background(), 1, pro.ID, &models.UpdateProfessionalRequest{Name: ptr.Ptr("Bia")})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestListServices_OnlyActive(t *testing.T) {
	svc, repo := newService()
	pro := seedProfessional(repo)

	active, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID: pro.ID, Name: "Haircut", DurationMinutes: 30, Price: 50,
	})
	require.NoError(t, err)

	inactive, err := svc.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		ProfessionalID: pro.ID, Name: "Coloring", DurationMinutes: 60, Price: 120,
	})
	require.NoError(t, err)
	_, err = svc.UpdateService(context.Background(), 1, inactive.ID, &models.UpdateServiceRequest{Active: ptr.Ptr(false)})
	require.NoError(t, err)

	resp, err := svc.ListServices(context.Background(), 1, true)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, active.ID, resp.Services[0].ID)

	all, err := svc.ListServices(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, all.Services, 2)
}
