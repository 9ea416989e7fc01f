package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// ScheduleUseCase casos de uso da agenda da equipe.
type ScheduleUseCase struct {
	eventRepo    repository.ScheduleEventRepository
	customerRepo repository.CustomerRepository
}

func NewScheduleUseCase(eventRepo repository.ScheduleEventRepository, customerRepo repository.CustomerRepository) *ScheduleUseCase {
	return &ScheduleUseCase{eventRepo: eventRepo, customerRepo: customerRepo}
}

func validEventType(s string) bool {
	switch s {
	case entity.EventTypeMedicao, entity.EventTypeInstalacao, entity.EventTypeEntrega, entity.EventTypeManutencao:
		return true
	}
	return false
}

func validEventStatus(s string) bool {
	switch s {
	case entity.EventStatusAgendado, entity.EventStatusEmAndamento, entity.EventStatusConcluido, entity.EventStatusCancelado:
		return true
	}
	return false
}

// Create agenda um compromisso para um cliente existente.
func (uc *ScheduleUseCase) Create(in dto.CreateScheduleEventRequest) (*dto.ScheduleEventResponse, error) {
	if in.CustomerID == "" || in.Date.IsZero() || !validEventType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.EventStatusAgendado
	}
	if !validEventStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	event := &entity.ScheduleEvent{
		ID:         uuid.New().String(),
		Type:       in.Type,
		CustomerID: in.CustomerID,
		ProjectID:  in.ProjectID,
		Time:       in.Time,
		Date:       in.Date,
		Location:   in.Location,
		Team:       in.Team,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return uc.GetByID(event.ID)
}

// Update edita o compromisso.
func (uc *ScheduleUseCase) Update(id string, in dto.CreateScheduleEventRequest) (*dto.ScheduleEventResponse, error) {
	event, err := uc.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != "" {
		if !validEventType(in.Type) {
			return nil, domain.ErrInvalidInput
		}
		event.Type = in.Type
	}
	if in.Status != "" {
		if !validEventStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		event.Status = in.Status
	}
	if in.CustomerID != "" {
		event.CustomerID = in.CustomerID
	}
	if !in.Date.IsZero() {
		event.Date = in.Date
	}
	event.ProjectID = in.ProjectID
	event.Time = in.Time
	event.Location = in.Location
	event.Team = in.Team
	event.UpdatedAt = time.Now()
	if err := uc.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

func (uc *ScheduleUseCase) GetByID(id string) (*dto.ScheduleEventResponse, error) {
	event, err := uc.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	return toEventResponse(event), nil
}

// List devolve a agenda inteira; date filtra pelo dia.
func (uc *ScheduleUseCase) List(date *time.Time) ([]*dto.ScheduleEventResponse, error) {
	events, err := uc.eventRepo.List(date)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ScheduleEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out, nil
}

func (uc *ScheduleUseCase) Delete(id string) error {
	event, err := uc.eventRepo.GetByID(id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	return uc.eventRepo.Delete(id)
}

func toEventResponse(e *entity.ScheduleEvent) *dto.ScheduleEventResponse {
	return &dto.ScheduleEventResponse{
		ID:           e.ID,
		Type:         e.Type,
		CustomerID:   e.CustomerID,
		CustomerName: e.CustomerName,
		ProjectID:    e.ProjectID,
		Time:         e.Time,
		Date:         e.Date,
		Location:     e.Location,
		Team:         e.Team,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
