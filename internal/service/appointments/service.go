package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/phone"
)

// Service сервис для работы с записями из админ-панели тенанта
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	clientRepo      ClientRepository
	tenantRepo      TenantRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepository AppointmentRepository,
	catalogRepository CatalogRepository,
	clientRepository ClientRepository,
	tenantRepository TenantRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepository,
		catalogRepo:     catalogRepository,
		clientRepo:      clientRepository,
		tenantRepo:      tenantRepository,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает запись от имени администратора тенанта
// Запись сразу получает статус confirmed: администратор подтверждает её фактом создания.
// Сетка слотов не проверяется — администратор может назначить любое время,
// защита от двойной записи остаётся за уникальным индексом по слоту.
func (s *Service) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Create: tenant=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	service, err := s.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Create: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Create - failed to get service: %v", ErrInternal, err)
	}

	var (
		result *domain.Appointment
		client *domain.Client
	)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		client, err = s.clientRepo.FindOrCreate(txCtx, &domain.Client{
			TenantID: req.TenantID,
			Name:     req.ClientName,
			Phone:    phone.Normalize(req.ClientPhone),
			Email:    req.ClientEmail,
		})
		if err != nil {
			s.logger.Error("Create: failed to find or create client: %v", err)
			return fmt.Errorf("%w: Create - failed to find or create client: %v", ErrInternal, err)
		}

		paymentStatus := domain.PaymentPending
		if req.PaymentStatus != nil {
			paymentStatus = domain.PaymentStatus(*req.PaymentStatus)
		}
		var depositValue float64
		if req.DepositValue != nil {
			depositValue = *req.DepositValue
		}

		appt := &domain.Appointment{
			TenantID:        req.TenantID,
			ClientID:        client.ID,
			ServiceID:       service.ID,
			ProfessionalID:  service.ProfessionalID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			Status:          domain.StatusConfirmed,
			PaymentStatus:   paymentStatus,
			TotalValue:      service.Price,
			DepositValue:    depositValue,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			Notes:           req.Notes,
		}

		result, err = s.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				s.logger.Warn("Create: slot %s already taken", req.StartTime)
				return ErrSlotTaken
			}
			s.logger.Error("Create: failed to create appointment: %v", err)
			return fmt.Errorf("%w: Create - failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created appointment id=%d", result.ID)

	// Запись создана сразу подтверждённой, уведомляем клиента
	s.sendEvent(ctx, notifier.EventAppointmentConfirmed, result, client)

	return models.FromDomainAppointment(result), nil
}

// List получает записи тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по специалисту, периоду, статусу и включению отменённых записей
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for tenant=%d", len(appointments), req.TenantID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm переводит запись из pending в confirmed
func (s *Service) Confirm(ctx context.Context, tenantID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d for tenant=%d", id, tenantID)

	appt, err := s.getAppointment(ctx, tenantID, id, "Confirm")
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: appointment id=%d cannot transition from %s to confirmed", id, appt.Status)
		return nil, fmt.Errorf("%w: %s -> confirmed", ErrInvalidTransition, appt.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, tenantID, id, domain.StatusConfirmed); err != nil {
		return nil, s.mapUpdateError("Confirm", id, err)
	}

	appt.Status = domain.StatusConfirmed
	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)

	s.sendEvent(ctx, notifier.EventAppointmentConfirmed, appt, nil)

	return models.FromDomainAppointment(appt), nil
}

// Complete переводит запись в completed и фиксирует оплату
// Если totalValue не передан, сохраняется цена услуги на момент создания записи.
func (s *Service) Complete(ctx context.Context, tenantID, id int64, req *models.CompleteAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d for tenant=%d", id, tenantID)

	if !domain.ValidPaymentStatus(req.PaymentStatus) {
		s.logger.Warn("Complete: invalid payment status=%s for appointment id=%d", req.PaymentStatus, id)
		return nil, fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}
	if req.TotalValue != nil && *req.TotalValue < 0 {
		return nil, fmt.Errorf("%w: totalValue must not be negative", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, tenantID, id, "Complete")
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(domain.StatusCompleted) {
		s.logger.Warn("Complete: appointment id=%d cannot transition from %s to completed", id, appt.Status)
		return nil, fmt.Errorf("%w: %s -> completed", ErrInvalidTransition, appt.Status)
	}

	totalValue := appt.TotalValue
	if req.TotalValue != nil {
		totalValue = *req.TotalValue
	}
	paymentStatus := domain.PaymentStatus(req.PaymentStatus)

	if err := s.appointmentRepo.Complete(ctx, tenantID, id, paymentStatus, totalValue); err != nil {
		return nil, s.mapUpdateError("Complete", id, err)
	}

	appt.Status = domain.StatusCompleted
	appt.PaymentStatus = paymentStatus
	appt.TotalValue = totalValue
	s.logger.Info("Complete: successfully completed appointment id=%d, payment=%s, total=%.2f", id, paymentStatus, totalValue)

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись с указанием причины
// Завершённую или уже отменённую запись отменить нельзя.
func (s *Service) Cancel(ctx context.Context, tenantID, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d for tenant=%d", id, tenantID)

	if len(req.Reason) > domain.MaxCancellationReasonLen {
		s.logger.Warn("Cancel: reason too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLen)
	}

	appt, err := s.getAppointment(ctx, tenantID, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: appointment id=%d cannot transition from %s to cancelled", id, appt.Status)
		return nil, fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, appt.Status)
	}

	if err := s.appointmentRepo.Cancel(ctx, tenantID, id, req.Reason); err != nil {
		return nil, s.mapUpdateError("Cancel", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)

	// Перечитываем, чтобы вернуть cancelledAt, проставленный БД
	updated, err := s.getAppointment(ctx, tenantID, id, "Cancel")
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(updated), nil
}

// UpdateNotes обновляет заметки записи
func (s *Service) UpdateNotes(ctx context.Context, tenantID, id int64, req *models.UpdateNotesRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateNotes: updating notes for appointment id=%d, tenant=%d", id, tenantID)

	if len(req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("UpdateNotes: notes too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := s.appointmentRepo.UpdateNotes(ctx, tenantID, id, req.Notes); err != nil {
		return nil, s.mapUpdateError("UpdateNotes", id, err)
	}

	return s.fetchResponse(ctx, tenantID, id, "UpdateNotes")
}

// MonthlyStats считает агрегированную статистику тенанта за календарный месяц
//
// Выручка складывается из полной стоимости завершённых записей и предоплат
// подтверждённых записей с частичной оплатой. Доля завершённых считается
// среди неотменённых записей месяца.
func (s *Service) MonthlyStats(ctx context.Context, tenantID int64, year, month int) (*models.MonthlyStatsResponse, error) {
	s.logger.Info("MonthlyStats: tenant=%d, year=%d, month=%d", tenantID, year, month)

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, domain.AppointmentsFilter{
		TenantID:         tenantID,
		StartDate:        &firstDay,
		EndDate:          &lastDay,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("MonthlyStats: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: MonthlyStats - repository error: %v", ErrInternal, err)
	}

	stats := &models.MonthlyStatsResponse{Year: year, Month: month}
	for _, appt := range appointments {
		stats.Total++
		switch appt.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
		stats.Revenue += appt.RevenueContribution()
	}

	if active := stats.Total - stats.Cancelled; active > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(active) * 100
	}

	s.logger.Info("MonthlyStats: tenant=%d, total=%d, revenue=%.2f", tenantID, stats.Total, stats.Revenue)
	return stats, nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, tenantID, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) fetchResponse(ctx context.Context, tenantID, id int64, op string) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, tenantID, id, op)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

func (s *Service) mapUpdateError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found during update", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// sendEvent отправляет webhook-событие в фоне, не блокируя ответ.
// Клиент и тенант дочитываются здесь же: для события нужны телефон и название.
func (s *Service) sendEvent(ctx context.Context, eventType string, appt *domain.Appointment, client *domain.Client) {
	tenant, err := s.tenantRepo.GetByID(ctx, appt.TenantID)
	if err != nil {
		s.logger.Warn("sendEvent: failed to get tenant id=%d: %v", appt.TenantID, err)
		return
	}

	if client == nil {
		client, err = s.clientRepo.GetByID(ctx, appt.TenantID, appt.ClientID)
		if err != nil {
			if !errors.Is(err, clientRepo.ErrClientNotFound) {
				s.logger.Warn("sendEvent: failed to get client id=%d: %v", appt.ClientID, err)
			}
			return
		}
	}

	event := &notifier.Event{
		Type: eventType,
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
			Name:            appt.ServiceName,
			DurationMinutes: appt.DurationMinutes,
			Price:           appt.TotalValue,
		},
		Tenant: notifier.TenantPayload{
			Name: tenant.Name,
			Slug: tenant.Slug,
		},
	}

	go func() {
		if err := s.notifier.Send(context.Background(), event); err != nil {
			s.logger.Warn("sendEvent: failed to send %s for appointment id=%d: %v", eventType, appt.ID, err)
		}
	}()
}

func validateCreateRequest(req *models.CreateAppointmentRequest) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if !phone.IsValid(req.ClientPhone) {
		return fmt.Errorf("%w: invalid clientPhone", ErrInvalidInput)
	}
	if req.PaymentStatus != nil && !domain.ValidPaymentStatus(*req.PaymentStatus) {
		return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}
	if req.DepositValue != nil && *req.DepositValue < 0 {
		return fmt.Errorf("%w: depositValue must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
