package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest corpo de criação/edição de material.
// CurrentStock só é aceito na criação (saldo inicial); edições mudam estoque via movimentos.
type CreateMaterialRequest struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Supplier     string          `json:"supplier"`
	Colors       []string        `json:"colors"`
}

// MaterialResponse material com campos derivados.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Supplier     string          `json:"supplier"`
	Colors       []string        `json:"colors"`
	LastPurchase *time.Time      `json:"lastPurchase,omitempty"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	IsLowStock   bool            `json:"isLowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RegisterMovementRequest movimento manual de estoque (entrada ou saída).
type RegisterMovementRequest struct {
	Type      string          `json:"type"` // entrada | saida
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	ProjectID *string         `json:"projectId"`
}

// StockMovementResponse linha do razão de estoque.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Balance    decimal.Decimal `json:"balance"`
	Reference  string          `json:"reference"`
	ProjectID  *string         `json:"projectId,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
}
