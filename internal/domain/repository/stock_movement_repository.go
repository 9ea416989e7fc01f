package repository

import "github.com/granitflow/granitflow-api/internal/domain/entity"

// StockMovementRepository define o porto do razão de estoque.
// Append-only: não há Update nem Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByMaterial(materialID string) ([]*entity.StockMovement, error)
}
