package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status válidos para Quote.
const (
	QuoteStatusRascunho  = "rascunho"
	QuoteStatusEnviado   = "enviado"
	QuoteStatusAprovado  = "aprovado"
	QuoteStatusRejeitado = "rejeitado"
)

// Quote representa um orçamento. Value é sempre a soma dos TotalPrice dos itens,
// recalculada a cada criação/edição.
type Quote struct {
	ID          string
	Number      string // único, ORC-aaaammdd-XXXXXX
	CustomerID  string
	ProjectID   *string // nulo até o orçamento virar projeto
	ProjectName string  // snapshot do nome informado no orçamento
	Status      string
	Value       decimal.Decimal
	ValidUntil  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CustomerName string // join
	Items        []*QuoteItem
}

// QuoteItem é uma linha do orçamento. Name e UnitPrice são snapshots do material
// no momento da inclusão; MaterialID pode ser nulo (serviço avulso).
// Position preserva a ordem da lista como foi criada.
type QuoteItem struct {
	ID         string
	QuoteID    string
	MaterialID *string
	Name       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Position   int
}

// TotalValue soma dos itens.
func (q *Quote) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, it := range q.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
