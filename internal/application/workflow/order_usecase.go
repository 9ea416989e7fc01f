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

// OrderUseCase casos de uso da Ordem de Serviço: CRUD, geração a partir de
// projeto aprovado e aprovação com baixa de estoque.
type OrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	customerRepo repository.CustomerRepository
}

// NewOrderUseCase constrói o caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	materialRepo repository.MaterialRepository,
	customerRepo repository.CustomerRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		customerRepo: customerRepo,
	}
}

func validOrderStatus(s string) bool {
	switch s {
	case entity.OrderStatusOrcamento, entity.OrderStatusPendente, entity.OrderStatusAprovada,
		entity.OrderStatusProducaoInterna, entity.OrderStatusAguardandoFrete,
		entity.OrderStatusInstalacao, entity.OrderStatusConcluida, entity.OrderStatusCancelada:
		return true
	}
	return false
}

// FromProject materializa uma OS a partir de um projeto aprovado: copia cliente,
// custo e prazo, e transforma cada vínculo de material em uma linha da OS com
// snapshot de nome/preço do material. TotalPrice da linha é o custo registrado
// no vínculo, não Quantity×UnitPrice.
func (uc *OrderUseCase) FromProject(ctx context.Context, projectID string) (*dto.OrderResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.Status != entity.ProjectStatusAprovado {
		return nil, fmt.Errorf("%w: projeto precisa estar aprovado", domain.ErrConflict)
	}

	now := time.Now()
	orderID := uuid.New().String()

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order := &entity.Order{
			ID:         orderID,
			Number:     documentNumber(orderNumberPrefix, now),
			CustomerID: project.CustomerID,
			ProjectID:  &project.ID,
			Status:     entity.OrderStatusPendente,
			Value:      project.Cost,
			Deadline:   project.Deadline,
			Progress:   0,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err = uc.txRunner.Run(ctx, func(
			orderRepo repository.OrderRepository,
			materialRepo repository.MaterialRepository,
			_ repository.StockMovementRepository,
			_ repository.ProjectRepository,
			_ repository.QuoteRepository,
		) error {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			for i, pm := range project.Materials {
				material, err := materialRepo.GetByID(pm.MaterialID)
				if err != nil {
					return err
				}
				if material == nil {
					return fmt.Errorf("%w: material do projeto não existe mais", domain.ErrConflict)
				}
				item := &entity.OrderItem{
					ID:         uuid.New().String(),
					OrderID:    order.ID,
					MaterialID: material.ID,
					Name:       material.Name,
					Quantity:   pm.Quantity,
					UnitPrice:  material.UnitPrice,
					TotalPrice: pm.Cost,
					Position:   i,
				}
				if err := orderRepo.CreateItem(item); err != nil {
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
		return uc.GetByID(orderID)
	}
	return nil, fmt.Errorf("gerar número da OS: %w", domain.ErrDuplicate)
}

// Approve aprova a OS dando baixa no estoque de cada linha, tudo em uma única
// transação com a linha da OS e as linhas de material bloqueadas (SELECT FOR
// UPDATE). Duas aprovações concorrentes serializam no lock da OS: a segunda
// relê status=aprovada e recebe Conflict, sem baixa dupla.
//
// Duas fases: primeiro valida a suficiência de TODAS as linhas (acumulando
// quando o mesmo material aparece mais de uma vez); só então debita o estoque e
// registra cada saída no razão com o saldo resultante. Qualquer falha desfaz
// tudo — estoque nunca fica negativo nem parcialmente debitado.
func (uc *OrderUseCase) Approve(ctx context.Context, id string) (*dto.OrderResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProjectRepository,
		_ repository.QuoteRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusAprovada {
			return domain.ErrConflict
		}

		now := time.Now()

		// Fase 1: bloqueia e valida todos os materiais antes de mexer em qualquer um.
		balances := make(map[string]decimal.Decimal, len(order.Items))
		materials := make(map[string]*entity.Material, len(order.Items))
		for _, item := range order.Items {
			material, ok := materials[item.MaterialID]
			if !ok {
				material, err = materialRepo.GetForUpdate(item.MaterialID)
				if err != nil {
					return err
				}
				if material == nil {
					return fmt.Errorf("%w: material da linha %q não existe mais", domain.ErrConflict, item.Name)
				}
				materials[item.MaterialID] = material
				balances[item.MaterialID] = material.CurrentStock
			}
			remaining := balances[item.MaterialID]
			if remaining.LessThan(item.Quantity) {
				return &domain.InsufficientStockError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Available:    remaining,
					Required:     item.Quantity,
				}
			}
			balances[item.MaterialID] = remaining.Sub(item.Quantity)
		}

		// Fase 2: debita e registra cada saída no razão com o saldo após o movimento.
		applied := make(map[string]decimal.Decimal, len(materials))
		for mid, m := range materials {
			applied[mid] = m.CurrentStock
		}
		for _, item := range order.Items {
			newBalance := applied[item.MaterialID].Sub(item.Quantity)
			applied[item.MaterialID] = newBalance
			if err := materialRepo.UpdateStock(item.MaterialID, newBalance, now); err != nil {
				return err
			}
			movement := &entity.StockMovement{
				ID:         uuid.New().String(),
				MaterialID: item.MaterialID,
				Type:       entity.MovementTypeSaida,
				Quantity:   item.Quantity,
				Balance:    newBalance,
				Reference:  fmt.Sprintf("OS %s", order.Number),
				ProjectID:  order.ProjectID,
				Date:       now,
				CreatedAt:  now,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}

		order.Status = entity.OrderStatusAprovada
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Create cria uma OS manualmente (fora do fluxo projeto→OS).
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusOrcamento
	}
	if !validOrderStatus(status) {
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
	orderID := uuid.New().String()

	items := make([]*entity.OrderItem, 0, len(in.Items))
	value := decimal.Zero
	for i, it := range in.Items {
		if it.MaterialID == "" || it.Name == "" || it.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total := it.TotalPrice
		if total.IsZero() {
			total = it.Quantity.Mul(it.UnitPrice)
		}
		items = append(items, &entity.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: total,
			Position:   i,
		})
		value = value.Add(total)
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order := &entity.Order{
			ID:         orderID,
			Number:     documentNumber(orderNumberPrefix, now),
			CustomerID: in.CustomerID,
			ProjectID:  in.ProjectID,
			Status:     status,
			Value:      value,
			Deadline:   in.Deadline,
			Progress:   0,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err = uc.txRunner.Run(ctx, func(
			orderRepo repository.OrderRepository,
			_ repository.MaterialRepository,
			_ repository.StockMovementRepository,
			_ repository.ProjectRepository,
			_ repository.QuoteRepository,
		) error {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			for _, it := range items {
				if err := orderRepo.CreateItem(it); err != nil {
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
		return uc.GetByID(orderID)
	}
	return nil, fmt.Errorf("gerar número da OS: %w", domain.ErrDuplicate)
}

// Update edita status de produção, progresso e prazo da OS.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" {
		if !validOrderStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		order.Status = in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, domain.ErrInvalidInput
		}
		order.Progress = *in.Progress
	}
	if in.Deadline != nil {
		order.Deadline = in.Deadline
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Delete remove a OS e seus itens. OS aprovada é imutável: Conflict.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusAprovada {
		return fmt.Errorf("%w: OS aprovada não pode ser excluída", domain.ErrConflict)
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MaterialRepository,
		_ repository.StockMovementRepository,
		_ repository.ProjectRepository,
		_ repository.QuoteRepository,
	) error {
		if err := orderRepo.DeleteItems(id); err != nil {
			return err
		}
		return orderRepo.Delete(id)
	})
}

// GetByID devolve a OS com itens.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List devolve todas as OS; term filtra por número, cliente ou projeto.
func (uc *OrderUseCase) List(term string) ([]*dto.OrderResponse, error) {
	var (
		orders []*entity.Order
		err    error
	)
	if term == "" {
		orders, err = uc.orderRepo.List()
	} else {
		orders, err = uc.orderRepo.Search(term)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         it.ID,
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		ProjectID:    o.ProjectID,
		ProjectName:  o.ProjectName,
		Status:       o.Status,
		Value:        o.Value,
		Deadline:     o.Deadline,
		Progress:     o.Progress,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        items,
	}
}
