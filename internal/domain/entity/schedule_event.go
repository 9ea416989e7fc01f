package entity

import "time"

// Tipos de evento da agenda.
const (
	EventTypeMedicao    = "medicao"
	EventTypeInstalacao = "instalacao"
	EventTypeEntrega    = "entrega"
	EventTypeManutencao = "manutencao"
)

// Status válidos para ScheduleEvent.
const (
	EventStatusAgendado    = "agendado"
	EventStatusEmAndamento = "em_andamento"
	EventStatusConcluido   = "concluido"
	EventStatusCancelado   = "cancelado"
)

// ScheduleEvent representa um compromisso da equipe (medição, instalação, entrega...).
type ScheduleEvent struct {
	ID         string
	Type       string
	CustomerID string
	ProjectID  *string
	Time       string // "08:30"
	Date       time.Time
	Location   string
	Team       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	CustomerName string // join
}
