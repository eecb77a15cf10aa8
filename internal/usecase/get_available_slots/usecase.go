package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storagecatalog "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storagetenant "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase расчёт доступных слотов для публичной страницы записи
type UseCase struct {
	tenantRepo      TenantRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	log             Logger
}

func NewUseCase(
	tenantRepo TenantRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	log Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:      tenantRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		log:             log,
	}
}

// Execute возвращает сетку доступных слотов на указанную дату.
//
// Сетка строится из рабочих часов тенанта на день недели даты, шаг равен
// длительности услуги плюс буфер тенанта. Из сетки исключаются слоты,
// пересекающиеся с перерывами, и слоты, время начала которых совпадает
// с активной записью специалиста.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Получаем тенанта по публичному slug
	tenant, err := u.tenantRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, storagetenant.ErrTenantNotFound) {
			return nil, fmt.Errorf("%w: slug=%s", ErrTenantNotFound, req.Slug)
		}
		u.log.Error("get_available_slots: failed to get tenant: slug=%s, error=%v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Получаем услугу: неактивная услуга для записи недоступна
	service, err := u.catalogRepo.GetService(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, storagecatalog.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: serviceID=%d", ErrServiceNotFound, req.ServiceID)
		}
		u.log.Error("get_available_slots: failed to get service: tenantID=%d, serviceID=%d, error=%v", tenant.ID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsOfferable() {
		return nil, fmt.Errorf("%w: serviceID=%d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	// 4. Рабочие часы на день недели запрошенной даты
	week, err := u.scheduleRepo.GetWorkingHours(ctx, tenant.ID)
	if err != nil {
		u.log.Error("get_available_slots: failed to get working hours: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	entry := week.EntryFor(req.Date)

	// 5. Блокировки на дату (общие и персональные для специалиста услуги)
	blocked, err := u.scheduleRepo.GetBlockedDatesForDate(ctx, tenant.ID, req.Date)
	if err != nil {
		u.log.Error("get_available_slots: failed to get blocked dates: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	// 6. Строим сетку кандидатов
	candidates := generateCandidateSlots(
		entry,
		req.Date,
		blocked,
		service.ProfessionalID,
		service.DurationMinutes,
		tenant.EffectiveBufferMinutes(),
	)

	// 7. Убираем занятые слоты по активным записям специалиста на дату
	appointments, err := u.appointmentRepo.GetByTenantWithFilter(ctx, occupancyFilter(tenant.ID, service.ProfessionalID, req))
	if err != nil {
		u.log.Error("get_available_slots: failed to get appointments: tenantID=%d, error=%v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	available := filterAvailable(candidates, appointments)

	u.log.Info("get_available_slots: computed slots: tenantID=%d, serviceID=%d, date=%s, candidates=%d, available=%d",
		tenant.ID, service.ID, req.Date.Format("2006-01-02"), len(candidates), len(available))

	return &Response{
		Slug:            tenant.Slug,
		ServiceID:       service.ID,
		ProfessionalID:  service.ProfessionalID,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		Slots:           available,
	}, nil
}

// occupancyFilter выбирает активные записи специалиста за один день.
func occupancyFilter(tenantID, professionalID int64, req Request) domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		TenantID:       tenantID,
		ProfessionalID: ptr.Ptr(professionalID),
		StartDate:      ptr.Ptr(req.Date),
		EndDate:        ptr.Ptr(req.Date),
	}
}
