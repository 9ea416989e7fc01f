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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementação de CustomerRepository sobre PostgreSQL (usável com pool ou tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository constrói o adaptador de persistência de clientes. Passar pool ou tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `c.id, c.name, c.email, c.phone, c.cpf_cnpj, c.status, c.address, c.city, c.state, c.zip_code, c.notes, c.created_at, c.last_contact,
		(SELECT COUNT(*) FROM projects p WHERE p.customer_id = c.id) AS projects_count`

// Create persiste um novo cliente. Email duplicado vira ErrDuplicate.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, cpf_cnpj, status, address, city, state, zip_code, notes, created_at, last_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CpfCnpj,
		customer.Status, customer.Address, customer.City, customer.State, customer.ZipCode,
		customer.Notes, customer.CreatedAt, customer.LastContact,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CpfCnpj, &c.Status, &c.Address,
		&c.City, &c.State, &c.ZipCode, &c.Notes, &c.CreatedAt, &c.LastContact,
		&c.ProjectsCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtém o cliente com a contagem de projetos.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c WHERE c.id = $1`
	c, err := r.scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByEmail obtém o cliente pelo email (único).
func (r *CustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c WHERE c.email = $1`
	c, err := r.scanCustomer(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) list(query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// List lista todos os clientes, mais recentes primeiro.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c ORDER BY c.created_at DESC`
	return r.list(query)
}

// Search filtra por nome, email ou cidade (case-insensitive).
func (r *CustomerRepo) Search(term string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c
		WHERE c.name ILIKE $1 OR c.email ILIKE $1 OR c.city ILIKE $1
		ORDER BY c.created_at DESC`
	return r.list(query, "%"+term+"%")
}

// Update atualiza o cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, cpf_cnpj = $5, status = $6,
			address = $7, city = $8, state = $9, zip_code = $10, notes = $11, last_contact = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CpfCnpj,
		customer.Status, customer.Address, customer.City, customer.State, customer.ZipCode,
		customer.Notes, customer.LastContact,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete remove o cliente. Projetos/OS vinculados (FK RESTRICT) viram ErrConflict.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
