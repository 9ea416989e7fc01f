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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementação de OrderRepository sobre PostgreSQL (usável com pool ou tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador de persistência de OS. Passar pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `o.id, o.number, o.customer_id, o.project_id, o.status, o.value, o.deadline, o.progress, o.created_at, o.updated_at,
		c.name AS customer_name, COALESCE(p.name, '') AS project_name`

// Create persiste uma nova OS. Número duplicado vira ErrDuplicate.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, number, customer_id, project_id, status, value, deadline, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.CustomerID, order.ProjectID, order.Status,
		order.Value, order.Deadline, order.Progress, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da OS na posição informada.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, material_id, name, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.MaterialID, item.Name, item.Quantity, item.UnitPrice, item.TotalPrice, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.ProjectID, &o.Status, &o.Value,
		&o.Deadline, &o.Progress, &o.CreatedAt, &o.UpdatedAt,
		&o.CustomerName, &o.ProjectName,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtém a OS com nomes de cliente/projeto e itens ordenados.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN projects p ON p.id = o.project_id
		WHERE o.id = $1`
	order, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// GetForUpdate obtém a OS com a linha bloqueada até o fim da transação.
// Não junta nomes de cliente/projeto: é a leitura da aprovação, que decide por
// status e itens. Quem aprovar em segundo lugar espera o lock e relê o status
// já aprovado.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `
		SELECT id, number, customer_id, project_id, status, value, deadline, progress, created_at, updated_at
		FROM orders WHERE id = $1 FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.ProjectID, &o.Status, &o.Value,
		&o.Deadline, &o.Progress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) listItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, material_id, name, quantity, unit_price, total_price, position
		FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MaterialID, &it.Name, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Position); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// List lista todas as OS, mais recentes primeiro. Sem itens.
func (r *OrderRepo) List() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN projects p ON p.id = o.project_id
		ORDER BY o.created_at DESC`
	return r.list(query)
}

// Search filtra por número, nome do cliente ou nome do projeto (case-insensitive).
func (r *OrderRepo) Search(term string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN projects p ON p.id = o.project_id
		WHERE o.number ILIKE $1 OR c.name ILIKE $1 OR p.name ILIKE $1
		ORDER BY o.created_at DESC`
	return r.list(query, "%"+term+"%")
}

// Update atualiza a OS.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, value = $3, deadline = $4, progress = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Value, order.Deadline, order.Progress, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// DeleteItems remove todos os itens da OS.
func (r *OrderRepo) DeleteItems(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// Delete remove a OS.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// CountByProject conta as OS vinculadas ao projeto.
func (r *OrderRepo) CountByProject(projectID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM orders WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders by project: %w", err)
	}
	return count, nil
}
