package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa uma chapa ou insumo do estoque (granito, mármore, quartzo...).
// CurrentStock só muda via movimentos de estoque (entrada/saída); nunca é editado direto.
type Material struct {
	ID           string
	Name         string
	Type         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
	Supplier     string
	Colors       []string // text[] no PostgreSQL
	LastPurchase *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalValue valor imobilizado em estoque (CurrentStock × UnitCost).
func (m *Material) TotalValue() decimal.Decimal {
	return m.CurrentStock.Mul(m.UnitCost)
}

// IsLowStock indica estoque no ponto de reposição (CurrentStock ≤ MinStock).
func (m *Material) IsLowStock() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinStock)
}
