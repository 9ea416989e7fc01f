package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status válidos para Order (OS). Conjunto único usado pelo fluxo e pelo dashboard.
const (
	OrderStatusOrcamento       = "orcamento"
	OrderStatusPendente        = "pendente"
	OrderStatusAprovada        = "aprovada"
	OrderStatusProducaoInterna = "producao_interna"
	OrderStatusAguardandoFrete = "aguardando_frete"
	OrderStatusInstalacao      = "instalacao"
	OrderStatusConcluida       = "concluida"
	OrderStatusCancelada       = "cancelada"
)

// OrderPendingStatuses é o que o dashboard conta como "OS pendente".
var OrderPendingStatuses = []string{OrderStatusOrcamento, OrderStatusPendente}

// OrderRevenueStatuses são os status em que a receita é considerada realizada.
var OrderRevenueStatuses = []string{OrderStatusConcluida}

// Order representa uma Ordem de Serviço (OS) de fabricação/instalação.
type Order struct {
	ID         string
	Number     string // único, OS-aaaammdd-XXXXXX
	CustomerID string
	ProjectID  *string
	Status     string
	Value      decimal.Decimal
	Deadline   *time.Time
	Progress   int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	CustomerName string // join
	ProjectName  string // join
	Items        []*OrderItem
}

// OrderItem é uma linha da OS, snapshot do material no momento da geração.
// TotalPrice vem do custo registrado no vínculo projeto-material, não de Quantity×UnitPrice.
// Position preserva a ordem da lista como foi criada.
type OrderItem struct {
	ID         string
	OrderID    string
	MaterialID string
	Name       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Position   int
}

// TotalValue soma dos itens.
func (o *Order) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
