package repository

import (
	"time"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
)

// ScheduleEventRepository define o porto de persistência para a agenda.
type ScheduleEventRepository interface {
	Create(event *entity.ScheduleEvent) error
	GetByID(id string) (*entity.ScheduleEvent, error)
	// List retorna todos os eventos; date filtra pelo dia quando informado.
	List(date *time.Time) ([]*entity.ScheduleEvent, error)
	Update(event *entity.ScheduleEvent) error
	Delete(id string) error
}
