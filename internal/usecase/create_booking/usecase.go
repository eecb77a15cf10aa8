package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storageappointment "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	storagecatalog "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	storagetenant "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/pkg/phone"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для создания записи через публичную страницу
type UseCase struct {
	tenantRepo      TenantRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	clientRepo      ClientRepository
	appointmentRepo AppointmentRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenantRepo TenantRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	clientRepo ClientRepository,
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:      tenantRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		clientRepo:      clientRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// список записей на дату читается с блокировкой FOR UPDATE, а уникальный
// индекс по слоту в БД служит последним рубежом защиты от двойной записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slug=%s, service=%d, date=%s, time=%s",
		req.Slug, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тенанта по публичному slug
	tenant, err := uc.tenantRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, storagetenant.ErrTenantNotFound) {
			uc.logger.Warn("CreateBooking: tenant slug=%s not found", req.Slug)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tenant slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Получаем услугу: записаться можно только на активную услугу
	service, err := uc.catalogRepo.GetService(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, storagecatalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsOfferable() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// Переменные для хранения результата
	var (
		result *domain.Appointment
		client *domain.Client
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Рабочие часы на день недели запрошенной даты
		week, err := uc.scheduleRepo.GetWorkingHours(txCtx, tenant.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		entry := week.EntryFor(req.Date)
		if entry == nil || !entry.Enabled {
			uc.logger.Warn("CreateBooking: tenant id=%d is closed on %s", tenant.ID, req.Date.Format(domain.DateFormat))
			return ErrOutsideWorkingHours
		}

		// 4.2. Проверяем блокировки даты
		blocked, err := uc.scheduleRepo.GetBlockedDatesForDate(txCtx, tenant.ID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked dates: %v", err)
			return fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
		}
		if domain.DateBlocked(blocked, req.Date, service.ProfessionalID) {
			uc.logger.Warn("CreateBooking: date %s is blocked for professional id=%d",
				req.Date.Format(domain.DateFormat), service.ProfessionalID)
			return ErrDateBlocked
		}

		// 4.3. Получаем все активные записи специалиста на дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			TenantID:       tenant.ID,
			ProfessionalID: ptr.Ptr(service.ProfessionalID),
			StartDate:      ptr.Ptr(req.Date),
			EndDate:        ptr.Ptr(req.Date),
		}
		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.4. Проверяем, что время принадлежит сетке слотов и свободно
		grid := domain.GenerateSlots(entry, service.DurationMinutes, tenant.EffectiveBufferMinutes())
		if err := validateSlot(req.StartTime, grid, appointments); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 4.5. Находим или создаем клиента по нормализованному телефону
		client, err = uc.clientRepo.FindOrCreate(txCtx, &domain.Client{
			TenantID: tenant.ID,
			Name:     req.ClientName,
			Phone:    phone.Normalize(req.ClientPhone),
			Email:    req.ClientEmail,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find or create client: %v", err)
			return fmt.Errorf("%w: failed to find or create client: %v", ErrInternal, err)
		}

		// 4.6. Создаем запись в статусе pending с денормализацией данных услуги
		appt := &domain.Appointment{
			TenantID:       tenant.ID,
			ClientID:       client.ID,
			ServiceID:      service.ID,
			ProfessionalID: service.ProfessionalID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			Status:         domain.StatusPending,
			PaymentStatus:  domain.PaymentPending,
			TotalValue:     service.Price,
			// Денормализация данных услуги
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, storageappointment.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s already taken (unique index)", req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	// 5. Отправляем webhook-событие после коммита, не блокируя ответ
	uc.sendCreatedEvent(tenant, service, client, result)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		ProfessionalID:  result.ProfessionalID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		ServiceName:     result.ServiceName,
		DurationMinutes: result.DurationMinutes,
		TotalValue:      result.TotalValue,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// sendCreatedEvent отправляет событие appointment.created в фоне.
// Ошибка доставки логируется и не влияет на результат записи.
func (uc *UseCase) sendCreatedEvent(
	tenant *domain.Tenant,
	service *domain.Service,
	client *domain.Client,
	appt *domain.Appointment,
) {
	event := &notifier.Event{
		Type: notifier.EventAppointmentCreated,
		Appointment: notifier.AppointmentPayload{
			ID:        appt.ID,
			Date:      appt.Date.Format(domain.DateFormat),
			StartTime: appt.StartTime.String(),
			Status:    string(appt.Status),
		},
		Client: notifier.ClientPayload{
			Name:  client.Name,
			Phone: client.Phone,
			Email: client.Email,
		},
		Service: notifier.ServicePayload{
			Name:            service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
		},
		Tenant: notifier.TenantPayload{
			Name: tenant.Name,
			Slug: tenant.Slug,
		},
	}

	go func() {
		if err := uc.notifier.Send(context.Background(), event); err != nil {
			uc.logger.Warn("CreateBooking: failed to send webhook event for appointment id=%d: %v", appt.ID, err)
		}
	}()
}
