package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementação de MaterialRepository sobre PostgreSQL (usável com pool ou tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador de persistência de materiais. Passar pool ou tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, type, current_stock, min_stock, unit_cost, unit_price, supplier, colors, last_purchase, created_at, updated_at`

// Create persiste um novo material.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Type, material.CurrentStock, material.MinStock,
		material.UnitCost, material.UnitPrice, material.Supplier, material.Colors,
		material.LastPurchase, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.Name, &m.Type, &m.CurrentStock, &m.MinStock, &m.UnitCost,
		&m.UnitPrice, &m.Supplier, &m.Colors, &m.LastPurchase, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtém o material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetForUpdate obtém o material bloqueando a linha (SELECT FOR UPDATE); usar dentro de tx.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material for update: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) list(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// List lista todos os materiais por nome.
func (r *MaterialRepo) List() ([]*entity.Material, error) {
	return r.list(`SELECT ` + materialColumns + ` FROM materials ORDER BY name`)
}

// Search filtra por nome, tipo ou fornecedor (case-insensitive).
func (r *MaterialRepo) Search(term string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials
		WHERE name ILIKE $1 OR type ILIKE $1 OR supplier ILIKE $1
		ORDER BY name`
	return r.list(query, "%"+term+"%")
}

// Update atualiza os dados cadastrais. Não toca current_stock: saldo só muda
// via UpdateStock, dentro dos fluxos de movimento.
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, type = $3, min_stock = $4, unit_cost = $5,
			unit_price = $6, supplier = $7, colors = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Type, material.MinStock, material.UnitCost,
		material.UnitPrice, material.Supplier, material.Colors, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock altera apenas o saldo do material.
func (r *MaterialRepo) UpdateStock(materialID string, stock decimal.Decimal, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		materialID, stock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// TouchLastPurchase registra a data da última entrada.
func (r *MaterialRepo) TouchLastPurchase(materialID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET last_purchase = $2 WHERE id = $1`,
		materialID, at,
	)
	if err != nil {
		return fmt.Errorf("touch last purchase: %w", err)
	}
	return nil
}

// Delete remove o material. As FKs de itens, vínculos e razão caem em cascata.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
