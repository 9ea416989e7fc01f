package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

func newOrderUseCase(m *memStore) *OrderUseCase {
	return NewOrderUseCase(
		&fakeTxRunner{m: m},
		&memOrderRepo{m: m},
		&memProjectRepo{m: m},
		&memMaterialRepo{m: m},
		&memCustomerRepo{m: m},
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedProject monta cliente + material + projeto aprovado com um vínculo de material.
func seedProject(m *memStore, projectStatus string, stock, quantity string) {
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa", Email: "alfa@ex.com"}
	m.materials["mat-1"] = &entity.Material{
		ID:           "mat-1",
		Name:         "Granito Preto São Gabriel",
		CurrentStock: dec(stock),
		UnitCost:     dec("350.00"),
		UnitPrice:    dec("550.00"),
	}
	deadline := time.Now().Add(30 * 24 * time.Hour)
	m.projects["proj-1"] = &entity.Project{
		ID:         "proj-1",
		Name:       "Cozinha Apto 1201",
		CustomerID: "cli-1",
		Status:     projectStatus,
		Cost:       dec("8200.00"),
		Deadline:   &deadline,
	}
	m.projectMaterials["proj-1"] = []*entity.ProjectMaterial{
		{ProjectID: "proj-1", MaterialID: "mat-1", Quantity: dec(quantity), Cost: dec("2975.00")},
	}
}

func TestFromProject_GeraOSComSnapshotDosMateriais(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "10.00", "8.50")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Number, "OS-"), "número deve ter prefixo OS-")
	assert.Equal(t, entity.OrderStatusPendente, order.Status)
	assert.Equal(t, "cli-1", order.CustomerID)
	require.NotNil(t, order.ProjectID)
	assert.Equal(t, "proj-1", *order.ProjectID)
	assert.True(t, dec("8200.00").Equal(order.Value), "valor da OS copia o custo do projeto")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Granito Preto São Gabriel", item.Name, "nome é snapshot do material")
	assert.True(t, dec("8.50").Equal(item.Quantity))
	assert.True(t, dec("550.00").Equal(item.UnitPrice))
	assert.True(t, dec("2975.00").Equal(item.TotalPrice), "total da linha copia o custo do vínculo")

	// Gerar a OS não mexe no estoque; só a aprovação dá baixa.
	assert.True(t, dec("10.00").Equal(m.materials["mat-1"].CurrentStock))
	assert.Empty(t, m.movements)
}

func TestFromProject_ProjetoNaoAprovado_Conflict(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusEmMedicao, "10.00", "2.00")
	uc := newOrderUseCase(m)

	_, err := uc.FromProject(context.Background(), "proj-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, m.orders)
}

func TestFromProject_ProjetoInexistente_NotFound(t *testing.T) {
	m := newMemStore()
	uc := newOrderUseCase(m)

	_, err := uc.FromProject(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_DaBaixaNoEstoqueERegistraRazao(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "10.00", "8.50")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)

	approved, err := uc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusAprovada, approved.Status)
	assert.True(t, dec("1.50").Equal(m.materials["mat-1"].CurrentStock), "estoque 10 - 8.5 = 1.5")

	require.Len(t, m.movements, 1)
	mv := m.movements[0]
	assert.Equal(t, entity.MovementTypeSaida, mv.Type)
	assert.True(t, dec("8.50").Equal(mv.Quantity))
	assert.True(t, dec("1.50").Equal(mv.Balance), "razão guarda o saldo após o movimento")
	assert.Equal(t, "OS "+order.Number, mv.Reference)
	require.NotNil(t, mv.ProjectID)
	assert.Equal(t, "proj-1", *mv.ProjectID)
}

func TestApprove_EstoqueInsuficiente_SemEfeitos(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "3.00", "5.00")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Granito Preto São Gabriel", stockErr.MaterialName)
	assert.True(t, dec("3.00").Equal(stockErr.Available))
	assert.True(t, dec("5.00").Equal(stockErr.Required))

	// Nada muda: estoque, razão e status intactos.
	assert.True(t, dec("3.00").Equal(m.materials["mat-1"].CurrentStock))
	assert.Empty(t, m.movements)
	assert.Equal(t, entity.OrderStatusPendente, m.orders[order.ID].Status)
}

func TestApprove_JaAprovada_ConflictSemBaixaDupla(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "10.00", "8.50")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "re-aprovar deve ser rejeitado")

	assert.True(t, dec("1.50").Equal(m.materials["mat-1"].CurrentStock), "estoque baixado uma única vez")
	assert.Len(t, m.movements, 1, "razão com um único movimento")
}

// staleOrderRepo devolve em GetByID um snapshot antigo da OS, enquanto
// GetForUpdate lê o estado corrente da loja. Modela a segunda de duas
// aprovações concorrentes: ela enxergou a OS pendente antes de a primeira
// confirmar, mas o lock da linha entrega o status já aprovado.
type staleOrderRepo struct {
	*memOrderRepo
	stale *entity.Order
}

func (r *staleOrderRepo) GetByID(id string) (*entity.Order, error) {
	if id == r.stale.ID {
		cp := *r.stale
		cp.Items = r.m.orderItems[id]
		return &cp, nil
	}
	return r.memOrderRepo.GetByID(id)
}

func (r *staleOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.memOrderRepo.GetByID(id)
}

type staleOrderTxRunner struct {
	m     *memStore
	stale *entity.Order
}

func (r *staleOrderTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	projectRepo repository.ProjectRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return fn(
		&staleOrderRepo{memOrderRepo: &memOrderRepo{m: r.m}, stale: r.stale},
		&memMaterialRepo{m: r.m},
		&memMovementRepo{m: r.m},
		&memProjectRepo{m: r.m},
		&memQuoteRepo{m: r.m},
	)
}

func TestApprove_AprovacoesConcorrentes_SegundaSemBaixa(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "15.00", "5.00")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	// A segunda aprovação partiu de uma leitura feita antes de a primeira
	// confirmar (status ainda pendente). A decisão tem que sair da leitura
	// sob bloqueio, que já vê aprovada.
	stale := &entity.Order{
		ID:         order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		ProjectID:  order.ProjectID,
		Status:     entity.OrderStatusPendente,
	}
	uc2 := NewOrderUseCase(
		&staleOrderTxRunner{m: m, stale: stale},
		&memOrderRepo{m: m},
		&memProjectRepo{m: m},
		&memMaterialRepo{m: m},
		&memCustomerRepo{m: m},
	)

	_, err = uc2.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.True(t, dec("10.00").Equal(m.materials["mat-1"].CurrentStock), "estoque 15 - 5, uma única baixa")
	assert.Len(t, m.movements, 1, "um único movimento no razão")
}

func TestApprove_MaterialRemovido_Conflict(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "10.00", "2.00")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)

	delete(m.materials, "mat-1")

	_, err = uc.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, m.movements)
}

func TestApprove_MesmoMaterialEmDuasLinhas_ValidaAcumulado(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	m.materials["mat-1"] = &entity.Material{ID: "mat-1", Name: "Mármore Carrara", CurrentStock: dec("5.00")}
	m.orders["os-1"] = &entity.Order{ID: "os-1", Number: "OS-20260901-AAAAAA", CustomerID: "cli-1", Status: entity.OrderStatusPendente}
	m.orderItems["os-1"] = []*entity.OrderItem{
		{ID: "i1", OrderID: "os-1", MaterialID: "mat-1", Name: "Mármore Carrara", Quantity: dec("3.00")},
		{ID: "i2", OrderID: "os-1", MaterialID: "mat-1", Name: "Mármore Carrara", Quantity: dec("3.00")},
	}
	uc := newOrderUseCase(m)

	// 3 + 3 > 5: a soma das linhas tem que ser validada, não cada linha isolada.
	_, err := uc.Approve(context.Background(), "os-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("5.00").Equal(m.materials["mat-1"].CurrentStock))
	assert.Empty(t, m.movements)

	// Com saldo 10 as duas linhas passam e o razão reconstrói o estoque.
	m.materials["mat-1"].CurrentStock = dec("10.00")
	_, err = uc.Approve(context.Background(), "os-1")
	require.NoError(t, err)

	assert.True(t, dec("4.00").Equal(m.materials["mat-1"].CurrentStock))
	require.Len(t, m.movements, 2)
	assert.True(t, dec("7.00").Equal(m.movements[0].Balance))
	assert.True(t, dec("4.00").Equal(m.movements[1].Balance))

	// Replay do razão: aplicar os movimentos sobre o saldo inicial chega ao saldo atual.
	balance := dec("10.00")
	for _, mv := range m.movements {
		balance = balance.Sub(mv.Quantity)
		assert.True(t, balance.Equal(mv.Balance))
	}
	assert.True(t, balance.Equal(m.materials["mat-1"].CurrentStock))
}

func TestDelete_OSAprovada_Conflict(t *testing.T) {
	m := newMemStore()
	seedProject(m, entity.ProjectStatusAprovado, "10.00", "2.00")
	uc := newOrderUseCase(m)

	order, err := uc.FromProject(context.Background(), "proj-1")
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	err = uc.Delete(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, m.orders, order.ID, "OS aprovada permanece")
}

func TestCreate_OSManualSomaItens(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newOrderUseCase(m)

	order, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: "cli-1",
		Items: []dto.OrderItemInput{
			{MaterialID: "mat-1", Name: "Bancada", Quantity: dec("2.00"), UnitPrice: dec("500.00")},
			{MaterialID: "mat-2", Name: "Soleira", Quantity: dec("1.00"), UnitPrice: dec("150.00"), TotalPrice: dec("150.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusOrcamento, order.Status, "status padrão")
	assert.True(t, dec("1150.00").Equal(order.Value), "2×500 + 150")
	assert.Len(t, order.Items, 2)

	// As linhas guardam a posição da lista como foi enviada.
	stored := m.orderItems[order.ID]
	require.Len(t, stored, 2)
	assert.Equal(t, "Bancada", stored[0].Name)
	assert.Equal(t, 0, stored[0].Position)
	assert.Equal(t, "Soleira", stored[1].Name)
	assert.Equal(t, 1, stored[1].Position)
}

func TestCreate_ClienteInexistente_NotFound(t *testing.T) {
	m := newMemStore()
	uc := newOrderUseCase(m)

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: "fantasma",
		Items:      []dto.OrderItemInput{{MaterialID: "m", Name: "x", Quantity: dec("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
