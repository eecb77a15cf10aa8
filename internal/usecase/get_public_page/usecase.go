package get_public_page

import (
	"context"
	"errors"
	"fmt"

	storagetenant "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
)

// UseCase сборка публичной страницы записи тенанта
type UseCase struct {
	tenantRepo   TenantRepository
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	log          Logger
}

func NewUseCase(tenantRepo TenantRepository, catalogRepo CatalogRepository, scheduleRepo ScheduleRepository, log Logger) *UseCase {
	return &UseCase{
		tenantRepo:   tenantRepo,
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

// Execute возвращает публичную страницу тенанта: профиль, активные услуги,
// специалистов и недельное расписание. Неактивные услуги на страницу не попадают.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	// 2. Получаем тенанта по публичному slug
	tenant, err := u.tenantRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, storagetenant.ErrTenantNotFound) {
			return nil, fmt.Errorf("%w: slug=%s", ErrTenantNotFound, req.Slug)
		}
		u.log.Error("get_public_page: failed to get tenant: slug=%s, error=%v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Активные услуги
	services, err := u.catalogRepo.ListServices(ctx, tenant.ID, true)
	if err != nil {
		u.log.Error("get_public_page: failed to list services: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	// 4. Специалисты
	professionals, err := u.catalogRepo.ListProfessionals(ctx, tenant.ID)
	if err != nil {
		u.log.Error("get_public_page: failed to list professionals: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to list professionals: %v", ErrInternal, err)
	}

	// 5. Недельное расписание
	week, err := u.scheduleRepo.GetWorkingHours(ctx, tenant.ID)
	if err != nil {
		u.log.Error("get_public_page: failed to get working hours: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	resp := &Response{
		ID:            tenant.ID,
		Name:          tenant.Name,
		Slug:          tenant.Slug,
		Address:       tenant.Address,
		Phone:         tenant.Phone,
		Services:      make([]Service, 0, len(services)),
		Professionals: make([]Professional, 0, len(professionals)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, Service{
			ID:              s.ID,
			ProfessionalID:  s.ProfessionalID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	for _, p := range professionals {
		resp.Professionals = append(resp.Professionals, Professional{ID: p.ID, Name: p.Name})
	}
	for _, entry := range week {
		day := WorkingHoursDay{
			Weekday: entry.Weekday,
			Enabled: entry.Enabled,
			Start:   entry.Start.String(),
			End:     entry.End.String(),
		}
		for _, br := range entry.Breaks {
			day.Breaks = append(day.Breaks, BreakInterval{Start: br.Start.String(), End: br.End.String()})
		}
		resp.WorkingHours = append(resp.WorkingHours, day)
	}

	return resp, nil
}
