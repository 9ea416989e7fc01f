package workflow

import (
	"context"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade dos fluxos de aprovação
// (orçamento→projeto, projeto→OS, aprovação de OS com baixa de estoque).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		projectRepo repository.ProjectRepository,
		quoteRepo repository.QuoteRepository,
	) error) error
}

// QuotePDFGenerator gera a versão em PDF do orçamento entregue ao cliente.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, customer *entity.Customer) ([]byte, error)
}
