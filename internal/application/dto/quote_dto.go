package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemInput linha do orçamento no request. TotalPrice ausente ou zero é
// calculado como Quantity×UnitPrice.
type QuoteItemInput struct {
	MaterialID *string         `json:"materialId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CreateQuoteRequest corpo de criação/edição de orçamento. A edição substitui a
// lista de itens inteira e recalcula o valor.
type CreateQuoteRequest struct {
	CustomerID  string           `json:"customerId"`
	ProjectName string           `json:"projectName"`
	Status      string           `json:"status"`
	ValidUntil  time.Time        `json:"validUntil"`
	Items       []QuoteItemInput `json:"items"`
}

// QuoteItemResponse linha do orçamento.
type QuoteItemResponse struct {
	ID         string          `json:"id"`
	MaterialID *string         `json:"materialId,omitempty"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// QuoteResponse orçamento com cliente e itens.
type QuoteResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	CustomerID   string              `json:"customerId"`
	CustomerName string              `json:"customerName"`
	ProjectID    *string             `json:"projectId,omitempty"`
	ProjectName  string              `json:"projectName"`
	Status       string              `json:"status"`
	Value        decimal.Decimal     `json:"value"`
	ValidUntil   time.Time           `json:"validUntil"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Items        []QuoteItemResponse `json:"items,omitempty"`
}
