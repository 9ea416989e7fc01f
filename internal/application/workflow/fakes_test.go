package workflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// Repositórios em memória para os testes dos fluxos. Os métodos não usados
// ficam no interface embutido e estouram se forem chamados por engano.

type memStore struct {
	customers        map[string]*entity.Customer
	materials        map[string]*entity.Material
	projects         map[string]*entity.Project
	projectMaterials map[string][]*entity.ProjectMaterial
	quotes           map[string]*entity.Quote
	quoteItems       map[string][]*entity.QuoteItem
	orders           map[string]*entity.Order
	orderItems       map[string][]*entity.OrderItem
	movements        []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		customers:        map[string]*entity.Customer{},
		materials:        map[string]*entity.Material{},
		projects:         map[string]*entity.Project{},
		projectMaterials: map[string][]*entity.ProjectMaterial{},
		quotes:           map[string]*entity.Quote{},
		quoteItems:       map[string][]*entity.QuoteItem{},
		orders:           map[string]*entity.Order{},
		orderItems:       map[string][]*entity.OrderItem{},
	}
}

// ── customers ─────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	repository.CustomerRepository
	m *memStore
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.m.customers[id], nil
}

func (r *memCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

// ── materials ─────────────────────────────────────────────────────────────────

type memMaterialRepo struct {
	repository.MaterialRepository
	m *memStore
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.m.materials[id], nil
}

func (r *memMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.m.materials[id], nil
}

func (r *memMaterialRepo) UpdateStock(materialID string, stock decimal.Decimal, updatedAt time.Time) error {
	if m, ok := r.m.materials[materialID]; ok {
		m.CurrentStock = stock
		m.UpdatedAt = updatedAt
	}
	return nil
}

func (r *memMaterialRepo) TouchLastPurchase(materialID string, at time.Time) error {
	if m, ok := r.m.materials[materialID]; ok {
		m.LastPurchase = &at
	}
	return nil
}

// ── projects ──────────────────────────────────────────────────────────────────

type memProjectRepo struct {
	repository.ProjectRepository
	m *memStore
}

func (r *memProjectRepo) Create(project *entity.Project) error {
	r.m.projects[project.ID] = project
	return nil
}

func (r *memProjectRepo) GetByID(id string) (*entity.Project, error) {
	p, ok := r.m.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Materials = r.m.projectMaterials[id]
	return &cp, nil
}

func (r *memProjectRepo) Update(project *entity.Project) error {
	r.m.projects[project.ID] = project
	return nil
}

// ── quotes ────────────────────────────────────────────────────────────────────

type memQuoteRepo struct {
	repository.QuoteRepository
	m *memStore
}

func (r *memQuoteRepo) Create(quote *entity.Quote) error {
	for _, q := range r.m.quotes {
		if q.Number == quote.Number {
			return domain.ErrDuplicate
		}
	}
	r.m.quotes[quote.ID] = quote
	return nil
}

func (r *memQuoteRepo) CreateItem(item *entity.QuoteItem) error {
	r.m.quoteItems[item.QuoteID] = append(r.m.quoteItems[item.QuoteID], item)
	return nil
}

func (r *memQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	q, ok := r.m.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Items = r.m.quoteItems[id]
	return &cp, nil
}

func (r *memQuoteRepo) GetForUpdate(id string) (*entity.Quote, error) {
	return r.GetByID(id)
}

func (r *memQuoteRepo) Update(quote *entity.Quote) error {
	r.m.quotes[quote.ID] = quote
	return nil
}

func (r *memQuoteRepo) DeleteItems(quoteID string) error {
	delete(r.m.quoteItems, quoteID)
	return nil
}

func (r *memQuoteRepo) Delete(id string) error {
	delete(r.m.quotes, id)
	delete(r.m.quoteItems, id)
	return nil
}

func (r *memQuoteRepo) UnlinkFromProject(projectID string) error {
	for _, q := range r.m.quotes {
		if q.ProjectID != nil && *q.ProjectID == projectID {
			q.ProjectID = nil
		}
	}
	return nil
}

// ── orders ────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	repository.OrderRepository
	m *memStore
}

func (r *memOrderRepo) Create(order *entity.Order) error {
	for _, o := range r.m.orders {
		if o.Number == order.Number {
			return domain.ErrDuplicate
		}
	}
	r.m.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.m.orderItems[item.OrderID] = append(r.m.orderItems[item.OrderID], item)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = r.m.orderItems[id]
	return &cp, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) Update(order *entity.Order) error {
	existing, ok := r.m.orders[order.ID]
	if ok {
		*existing = *order
	}
	return nil
}

func (r *memOrderRepo) DeleteItems(orderID string) error {
	delete(r.m.orderItems, orderID)
	return nil
}

func (r *memOrderRepo) Delete(id string) error {
	delete(r.m.orders, id)
	return nil
}

func (r *memOrderRepo) CountByProject(projectID string) (int, error) {
	count := 0
	for _, o := range r.m.orders {
		if o.ProjectID != nil && *o.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

// ── movements ─────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	repository.StockMovementRepository
	m *memStore
}

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	r.m.movements = append(r.m.movements, movement)
	return nil
}

func (r *memMovementRepo) ListByMaterial(materialID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mv := range r.m.movements {
		if mv.MaterialID == materialID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

// fakeTxRunner executa o callback direto sobre os repositórios em memória.
// Não simula rollback: os testes de falha validam que os fluxos não tocam em
// nada antes de falhar.
type fakeTxRunner struct {
	m *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	projectRepo repository.ProjectRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return fn(
		&memOrderRepo{m: r.m},
		&memMaterialRepo{m: r.m},
		&memMovementRepo{m: r.m},
		&memProjectRepo{m: r.m},
		&memQuoteRepo{m: r.m},
	)
}
