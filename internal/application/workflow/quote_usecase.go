package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// QuoteUseCase casos de uso de orçamento: CRUD, aprovação (gera projeto) e rejeição.
type QuoteUseCase struct {
	txRunner     TxRunner
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	projectRepo  repository.ProjectRepository
}

// NewQuoteUseCase constrói o caso de uso.
func NewQuoteUseCase(
	txRunner TxRunner,
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	projectRepo repository.ProjectRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:     txRunner,
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		projectRepo:  projectRepo,
	}
}

func validQuoteStatus(s string) bool {
	switch s {
	case entity.QuoteStatusRascunho, entity.QuoteStatusEnviado, entity.QuoteStatusAprovado, entity.QuoteStatusRejeitado:
		return true
	}
	return false
}

// buildItems monta as linhas do orçamento na ordem recebida. TotalPrice zero é
// calculado como Quantity×UnitPrice; valores informados são preservados.
func buildItems(quoteID string, in []dto.QuoteItemInput) ([]*entity.QuoteItem, error) {
	items := make([]*entity.QuoteItem, 0, len(in))
	for i, it := range in {
		if it.Name == "" || it.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total := it.TotalPrice
		if total.IsZero() {
			total = it.Quantity.Mul(it.UnitPrice)
		}
		items = append(items, &entity.QuoteItem{
			ID:         uuid.New().String(),
			QuoteID:    quoteID,
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: total,
			Position:   i,
		})
	}
	return items, nil
}

// Create cria o orçamento com número gerado e valor = soma dos itens.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.CustomerID == "" || in.ProjectName == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.QuoteStatusRascunho
	}
	if !validQuoteStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	quoteID := uuid.New().String()
	items, err := buildItems(quoteID, in.Items)
	if err != nil {
		return nil, err
	}
	value := decimal.Zero
	for _, it := range items {
		value = value.Add(it.TotalPrice)
	}

	// Número único: re-gera em caso de colisão com a constraint do banco.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		quote := &entity.Quote{
			ID:          quoteID,
			Number:      documentNumber(quoteNumberPrefix, now),
			CustomerID:  in.CustomerID,
			ProjectName: in.ProjectName,
			Status:      status,
			Value:       value,
			ValidUntil:  in.ValidUntil,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = uc.txRunner.Run(ctx, func(
			_ repository.OrderRepository,
			_ repository.MaterialRepository,
			_ repository.StockMovementRepository,
			_ repository.ProjectRepository,
			quoteRepo repository.QuoteRepository,
		) error {
			if err := quoteRepo.Create(quote); err != nil {
				return err
			}
			for _, it := range items {
				if err := quoteRepo.CreateItem(it); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return uc.GetByID(quoteID)
	}
	return nil, fmt.Errorf("gerar número do orçamento: %w", domain.ErrDuplicate)
}

// Update edita cabeçalho e substitui a lista de itens inteira, recalculando o valor.
func (uc *QuoteUseCase) Update(ctx context.Context, id string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	existing, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" && !validQuoteStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	items, err := buildItems(id, in.Items)
	if err != nil {
		return nil, err
	}
	value := decimal.Zero
	for _, it := range items {
		value = value.Add(it.TotalPrice)
	}

	if in.CustomerID != "" {
		existing.CustomerID = in.CustomerID
	}
	if in.ProjectName != "" {
		existing.ProjectName = in.ProjectName
	}
	if in.Status != "" {
		existing.Status = in.Status
	}
	if !in.ValidUntil.IsZero() {
		existing.ValidUntil = in.ValidUntil
	}
	existing.Value = value
	existing.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		_ repository.MaterialRepository,
		_ repository.StockMovementRepository,
		_ repository.ProjectRepository,
		quoteRepo repository.QuoteRepository,
	) error {
		if err := quoteRepo.Update(existing); err != nil {
			return err
		}
		if err := quoteRepo.DeleteItems(id); err != nil {
			return err
		}
		for _, it := range items {
			if err := quoteRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Approve aprova o orçamento e materializa o projeto correspondente em uma
// única transação: status=aprovado, projeto criado com custo = valor do
// orçamento, e orçamento ligado ao projeto. A linha do orçamento é lida com
// SELECT FOR UPDATE: aprovações concorrentes serializam, a segunda relê
// status=aprovado e recebe Conflict sem criar um segundo projeto.
func (uc *QuoteUseCase) Approve(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		_ repository.MaterialRepository,
		_ repository.StockMovementRepository,
		projectRepo repository.ProjectRepository,
		quoteRepo repository.QuoteRepository,
	) error {
		quote, err := quoteRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if quote.Status == entity.QuoteStatusAprovado {
			return domain.ErrConflict
		}

		now := time.Now()
		project := &entity.Project{
			ID:          uuid.New().String(),
			Name:        quote.ProjectName,
			CustomerID:  quote.CustomerID,
			Status:      entity.ProjectStatusAprovado,
			Area:        decimal.Zero, // medição preenche depois
			Cost:        quote.Value,
			Progress:    0,
			Description: fmt.Sprintf("Projeto criado a partir do orçamento %s", quote.Number),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := projectRepo.Create(project); err != nil {
			return err
		}

		quote.Status = entity.QuoteStatusAprovado
		quote.ProjectID = &project.ID
		quote.UpdatedAt = now
		return quoteRepo.Update(quote)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Reject marca o orçamento como rejeitado. Sem efeitos colaterais além do status.
func (uc *QuoteUseCase) Reject(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	quote.Status = entity.QuoteStatusRejeitado
	quote.UpdatedAt = time.Now()
	if err := uc.quoteRepo.Update(quote); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// GetByID devolve o orçamento com itens.
func (uc *QuoteUseCase) GetByID(id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(quote), nil
}

// List devolve todos os orçamentos; term filtra por número, cliente ou projeto.
func (uc *QuoteUseCase) List(term string) ([]*dto.QuoteResponse, error) {
	var (
		quotes []*entity.Quote
		err    error
	)
	if term == "" {
		quotes, err = uc.quoteRepo.List()
	} else {
		quotes, err = uc.quoteRepo.Search(term)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteResponse(q))
	}
	return out, nil
}

// Delete remove o orçamento e seus itens.
func (uc *QuoteUseCase) Delete(id string) error {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return domain.ErrNotFound
	}
	return uc.quoteRepo.Delete(id)
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	items := make([]dto.QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuoteItemResponse{
			ID:         it.ID,
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.QuoteResponse{
		ID:           q.ID,
		Number:       q.Number,
		CustomerID:   q.CustomerID,
		CustomerName: q.CustomerName,
		ProjectID:    q.ProjectID,
		ProjectName:  q.ProjectName,
		Status:       q.Status,
		Value:        q.Value,
		ValidUntil:   q.ValidUntil,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
		Items:        items,
	}
}
