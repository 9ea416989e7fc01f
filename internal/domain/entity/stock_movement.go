package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSaida   = "saida"
)

// StockMovement é uma linha do livro-razão de estoque. Append-only: nunca é
// alterada nem removida pela aplicação. Balance guarda o saldo do material
// imediatamente após o movimento, então o replay do razão reconstrói o estoque.
type StockMovement struct {
	ID         string
	MaterialID string
	Type       string // entrada | saida
	Quantity   decimal.Decimal
	Balance    decimal.Decimal
	Reference  string // ex: "OS OS-20260901-A1B2C3", fornecedor, ajuste
	ProjectID  *string
	Date       time.Time
	CreatedAt  time.Time
}
