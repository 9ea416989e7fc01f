package postgres

import (
	"context"
	"fmt"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do razão de estoque sobre PostgreSQL (usável com pool ou tx).
// Append-only: só INSERT e SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador do razão. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra um movimento no razão.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, material_id, type, quantity, balance, reference, project_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MaterialID, movement.Type, movement.Quantity, movement.Balance,
		movement.Reference, movement.ProjectID, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByMaterial lista os movimentos do material, mais recentes primeiro.
func (r *StockMovementRepo) ListByMaterial(materialID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, material_id, type, quantity, balance, reference, project_id, date, created_at
		FROM stock_movements WHERE material_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.Balance, &m.Reference, &m.ProjectID, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
