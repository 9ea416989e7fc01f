package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/application/workflow"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// MaterialUseCase casos de uso de material: CRUD, movimentos manuais de estoque
// e consulta do razão.
type MaterialUseCase struct {
	txRunner     workflow.TxRunner
	materialRepo repository.MaterialRepository
	movementRepo repository.StockMovementRepository
}

func NewMaterialUseCase(
	txRunner workflow.TxRunner,
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
) *MaterialUseCase {
	return &MaterialUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
	}
}

// Create cadastra o material. CurrentStock informado vira o saldo inicial e
// gera a primeira linha do razão quando positivo.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || in.Type == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Type:         in.Type,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		UnitCost:     in.UnitCost,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		Colors:       in.Colors,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.CurrentStock.IsPositive() {
		material.LastPurchase = &now
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProjectRepository,
		_ repository.QuoteRepository,
	) error {
		if err := materialRepo.Create(material); err != nil {
			return err
		}
		if material.CurrentStock.IsPositive() {
			return movementRepo.Create(&entity.StockMovement{
				ID:         uuid.New().String(),
				MaterialID: material.ID,
				Type:       entity.MovementTypeEntrada,
				Quantity:   material.CurrentStock,
				Balance:    material.CurrentStock,
				Reference:  "Saldo inicial",
				Date:       now,
				CreatedAt:  now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Update edita os dados cadastrais. O saldo não é editável por aqui: estoque só
// muda via RegisterMovement ou aprovação de OS.
func (uc *MaterialUseCase) Update(id string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		material.Name = in.Name
	}
	if in.Type != "" {
		material.Type = in.Type
	}
	material.MinStock = in.MinStock
	material.UnitCost = in.UnitCost
	material.UnitPrice = in.UnitPrice
	material.Supplier = in.Supplier
	material.Colors = in.Colors
	material.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// RegisterMovement registra uma entrada ou saída manual de estoque, com a linha
// do material bloqueada. Saída maior que o saldo é recusada sem efeitos.
func (uc *MaterialUseCase) RegisterMovement(ctx context.Context, materialID string, in dto.RegisterMovementRequest) (*dto.StockMovementResponse, error) {
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSaida {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProjectRepository,
		_ repository.QuoteRepository,
	) error {
		material, err := materialRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		var balance decimal.Decimal
		switch in.Type {
		case entity.MovementTypeEntrada:
			balance = material.CurrentStock.Add(in.Quantity)
		case entity.MovementTypeSaida:
			if material.CurrentStock.LessThan(in.Quantity) {
				return &domain.InsufficientStockError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Available:    material.CurrentStock,
					Required:     in.Quantity,
				}
			}
			balance = material.CurrentStock.Sub(in.Quantity)
		}

		if err := materialRepo.UpdateStock(material.ID, balance, now); err != nil {
			return err
		}
		if in.Type == entity.MovementTypeEntrada {
			if err := materialRepo.TouchLastPurchase(material.ID, now); err != nil {
				return err
			}
		}
		movement = &entity.StockMovement{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Type:       in.Type,
			Quantity:   in.Quantity,
			Balance:    balance,
			Reference:  in.Reference,
			ProjectID:  in.ProjectID,
			Date:       now,
			CreatedAt:  now,
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ListMovements devolve o razão do material, do mais recente ao mais antigo.
func (uc *MaterialUseCase) ListMovements(materialID string) ([]*dto.StockMovementResponse, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List devolve todos os materiais; term filtra por nome, tipo ou fornecedor.
func (uc *MaterialUseCase) List(term string) ([]*dto.MaterialResponse, error) {
	var (
		materials []*entity.Material
		err       error
	)
	if term == "" {
		materials, err = uc.materialRepo.List()
	} else {
		materials, err = uc.materialRepo.Search(term)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialResponse(m))
	}
	return out, nil
}

// LowStock devolve só os materiais no ponto de reposição.
func (uc *MaterialUseCase) LowStock() ([]*dto.MaterialResponse, error) {
	materials, err := uc.materialRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0)
	for _, m := range materials {
		if m.IsLowStock() {
			out = append(out, toMaterialResponse(m))
		}
	}
	return out, nil
}

// Delete remove o material. Linhas de OS/orçamento, vínculos de projeto e o
// razão caem em cascata; as linhas mantêm o nome e o preço como snapshot.
func (uc *MaterialUseCase) Delete(id string) error {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.materialRepo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		UnitCost:     m.UnitCost,
		UnitPrice:    m.UnitPrice,
		Supplier:     m.Supplier,
		Colors:       m.Colors,
		LastPurchase: m.LastPurchase,
		TotalValue:   m.TotalValue(),
		IsLowStock:   m.IsLowStock(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Balance:    m.Balance,
		Reference:  m.Reference,
		ProjectID:  m.ProjectID,
		Date:       m.Date,
		CreatedAt:  m.CreatedAt,
	}
}
