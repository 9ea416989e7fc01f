package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput linha de OS criada manualmente.
type OrderItemInput struct {
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CreateOrderRequest criação manual de OS (fora do fluxo projeto→OS).
type CreateOrderRequest struct {
	CustomerID string           `json:"customerId"`
	ProjectID  *string          `json:"projectId"`
	Status     string           `json:"status"`
	Deadline   *time.Time       `json:"deadline"`
	Items      []OrderItemInput `json:"items"`
}

// UpdateOrderRequest edição de OS (status de produção, progresso, prazo).
type UpdateOrderRequest struct {
	Status   string     `json:"status"`
	Progress *int       `json:"progress"`
	Deadline *time.Time `json:"deadline"`
}

// OrderItemResponse linha da OS.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderResponse OS com cliente, projeto e itens.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	CustomerID   string              `json:"customerId"`
	CustomerName string              `json:"customerName"`
	ProjectID    *string             `json:"projectId,omitempty"`
	ProjectName  string              `json:"projectName,omitempty"`
	Status       string              `json:"status"`
	Value        decimal.Decimal     `json:"value"`
	Deadline     *time.Time          `json:"deadline,omitempty"`
	Progress     int                 `json:"progress"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}
