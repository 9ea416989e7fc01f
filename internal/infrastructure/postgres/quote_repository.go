package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementação de QuoteRepository sobre PostgreSQL (usável com pool ou tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository constrói o adaptador de persistência de orçamentos. Passar pool ou tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `q.id, q.number, q.customer_id, q.project_id, q.project_name, q.status, q.value, q.valid_until, q.created_at, q.updated_at, c.name AS customer_name`

// Create persiste um novo orçamento. Número duplicado vira ErrDuplicate.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, number, customer_id, project_id, project_name, status, value, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.Number, quote.CustomerID, quote.ProjectID, quote.ProjectName,
		quote.Status, quote.Value, quote.ValidUntil, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha do orçamento na posição informada.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, material_id, name, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.MaterialID, item.Name, item.Quantity, item.UnitPrice, item.TotalPrice, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.Number, &q.CustomerID, &q.ProjectID, &q.ProjectName, &q.Status,
		&q.Value, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt, &q.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetByID obtém o orçamento com nome do cliente e itens ordenados.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes q JOIN customers c ON c.id = q.customer_id
		WHERE q.id = $1`
	quote, err := scanQuote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	return quote, nil
}

// GetForUpdate obtém o orçamento com a linha bloqueada até o fim da transação.
// Não junta o nome do cliente: é a leitura da aprovação, que decide por status.
func (r *QuoteRepo) GetForUpdate(id string) (*entity.Quote, error) {
	query := `
		SELECT id, number, customer_id, project_id, project_name, status, value, valid_until, created_at, updated_at
		FROM quotes WHERE id = $1 FOR UPDATE`
	var q entity.Quote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.Number, &q.CustomerID, &q.ProjectID, &q.ProjectName, &q.Status,
		&q.Value, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote for update: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

func (r *QuoteRepo) listItems(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, material_id, name, quantity, unit_price, total_price, position
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()

	var items []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.MaterialID, &it.Name, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Position); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *QuoteRepo) list(query string, args ...any) ([]*entity.Quote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// List lista todos os orçamentos, mais recentes primeiro. Sem itens.
func (r *QuoteRepo) List() ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes q JOIN customers c ON c.id = q.customer_id
		ORDER BY q.created_at DESC`
	return r.list(query)
}

// Search filtra por número, nome do cliente ou nome do projeto (case-insensitive).
func (r *QuoteRepo) Search(term string) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes q JOIN customers c ON c.id = q.customer_id
		WHERE q.number ILIKE $1 OR c.name ILIKE $1 OR q.project_name ILIKE $1
		ORDER BY q.created_at DESC`
	return r.list(query, "%"+term+"%")
}

// Update atualiza o orçamento.
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	query := `
		UPDATE quotes SET customer_id = $2, project_id = $3, project_name = $4, status = $5,
			value = $6, valid_until = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.CustomerID, quote.ProjectID, quote.ProjectName, quote.Status,
		quote.Value, quote.ValidUntil, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// DeleteItems remove todos os itens do orçamento.
func (r *QuoteRepo) DeleteItems(quoteID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quote_items WHERE quote_id = $1`, quoteID)
	if err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	return nil
}

// Delete remove o orçamento e, por cascata, seus itens.
func (r *QuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// UnlinkFromProject zera project_id dos orçamentos do projeto (antes de excluí-lo).
func (r *QuoteRepo) UnlinkFromProject(projectID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET project_id = NULL WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("unlink quotes from project: %w", err)
	}
	return nil
}
