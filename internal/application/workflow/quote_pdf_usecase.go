package workflow

import (
	"context"

	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// QuotePDFUseCase exporta o orçamento em PDF.
type QuotePDFUseCase struct {
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	generator    QuotePDFGenerator
}

// NewQuotePDFUseCase constrói o caso de uso.
func NewQuotePDFUseCase(
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	generator QuotePDFGenerator,
) *QuotePDFUseCase {
	return &QuotePDFUseCase{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// Export gera o PDF do orçamento e devolve os bytes e o nome de arquivo sugerido.
func (uc *QuotePDFUseCase) Export(ctx context.Context, id string) ([]byte, string, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if quote == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(quote.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateQuotePDF(ctx, quote, customer)
	if err != nil {
		return nil, "", err
	}
	return pdf, quote.Number + ".pdf", nil
}
