package dto

import "time"

// CreateScheduleEventRequest corpo de criação/edição de evento da agenda.
type CreateScheduleEventRequest struct {
	Type       string    `json:"type"`
	CustomerID string    `json:"customerId"`
	ProjectID  *string   `json:"projectId"`
	Time       string    `json:"time"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Team       string    `json:"team"`
	Status     string    `json:"status"`
}

// ScheduleEventResponse evento com nome do cliente.
type ScheduleEventResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	ProjectID    *string   `json:"projectId,omitempty"`
	Time         string    `json:"time"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Team         string    `json:"team"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
