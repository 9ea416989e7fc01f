package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

func newQuoteUseCase(m *memStore) *QuoteUseCase {
	return NewQuoteUseCase(
		&fakeTxRunner{m: m},
		&memQuoteRepo{m: m},
		&memCustomerRepo{m: m},
		&memProjectRepo{m: m},
	)
}

func createQuoteRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		CustomerID:  "cli-1",
		ProjectName: "Bancada Cozinha",
		ValidUntil:  time.Now().Add(15 * 24 * time.Hour),
		Items: []dto.QuoteItemInput{
			{Name: "Granito Verde Ubatuba", Quantity: dec("4.50"), UnitPrice: dec("480.00")},
			{Name: "Mão de obra", Quantity: dec("1.00"), UnitPrice: dec("800.00"), TotalPrice: dec("800.00")},
		},
	}
}

func TestQuoteCreate_NumeroGeradoEValorSomado(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(quote.Number, "ORC-"), "número deve ter prefixo ORC-")
	assert.Equal(t, entity.QuoteStatusRascunho, quote.Status, "status padrão")
	assert.True(t, dec("2960.00").Equal(quote.Value), "4.5×480 + 800")
	require.Len(t, quote.Items, 2)
	assert.True(t, dec("2160.00").Equal(quote.Items[0].TotalPrice), "total calculado quando omitido")
	assert.True(t, dec("800.00").Equal(quote.Items[1].TotalPrice), "total informado é preservado")
}

func TestQuoteCreate_ClienteInexistente_NotFound(t *testing.T) {
	m := newMemStore()
	uc := newQuoteUseCase(m)

	_, err := uc.Create(context.Background(), createQuoteRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, m.quotes)
}

func TestQuoteApprove_CriaProjetoELigaOrcamento(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)

	approved, err := uc.Approve(context.Background(), quote.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.QuoteStatusAprovado, approved.Status)
	require.NotNil(t, approved.ProjectID, "orçamento aprovado aponta para o projeto criado")

	project, ok := m.projects[*approved.ProjectID]
	require.True(t, ok, "projeto materializado na mesma transação")
	assert.Equal(t, "Bancada Cozinha", project.Name)
	assert.Equal(t, "cli-1", project.CustomerID)
	assert.Equal(t, entity.ProjectStatusAprovado, project.Status)
	assert.True(t, quote.Value.Equal(project.Cost), "custo do projeto copia o valor do orçamento")
	assert.Contains(t, project.Description, quote.Number)
}

func TestQuoteApprove_DuasVezes_ConflictSemSegundoProjeto(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), quote.ID)
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), quote.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, m.projects, 1, "um único projeto criado")
}

// staleQuoteRepo devolve em GetByID um snapshot antigo do orçamento, enquanto
// GetForUpdate lê o estado corrente da loja. Modela a segunda de duas
// aprovações concorrentes.
type staleQuoteRepo struct {
	*memQuoteRepo
	stale *entity.Quote
}

func (r *staleQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	if id == r.stale.ID {
		cp := *r.stale
		cp.Items = r.m.quoteItems[id]
		return &cp, nil
	}
	return r.memQuoteRepo.GetByID(id)
}

func (r *staleQuoteRepo) GetForUpdate(id string) (*entity.Quote, error) {
	return r.memQuoteRepo.GetByID(id)
}

type staleQuoteTxRunner struct {
	m     *memStore
	stale *entity.Quote
}

func (r *staleQuoteTxRunner) Run(_ context.Context, fn func(
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
		&staleQuoteRepo{memQuoteRepo: &memQuoteRepo{m: r.m}, stale: r.stale},
	)
}

func TestQuoteApprove_AprovacoesConcorrentes_UmSoProjeto(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), quote.ID)
	require.NoError(t, err)

	// A segunda aprovação leu o orçamento ainda rascunho antes de a primeira
	// confirmar. A decisão tem que sair da leitura sob bloqueio, que já vê
	// aprovado.
	stale := &entity.Quote{
		ID:         quote.ID,
		Number:     quote.Number,
		CustomerID: quote.CustomerID,
		Status:     entity.QuoteStatusRascunho,
		Value:      quote.Value,
	}
	uc2 := NewQuoteUseCase(
		&staleQuoteTxRunner{m: m, stale: stale},
		&memQuoteRepo{m: m},
		&memCustomerRepo{m: m},
		&memProjectRepo{m: m},
	)

	_, err = uc2.Approve(context.Background(), quote.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, m.projects, 1, "um único projeto mesmo com leitura defasada")
}

func TestQuoteCreate_ItensMantemAOrdemDaLista(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	// Nomes em ordem alfabética inversa: a lista tem que sair como entrou,
	// não ordenada por nome.
	quote, err := uc.Create(context.Background(), dto.CreateQuoteRequest{
		CustomerID: "cli-1",
		Items: []dto.QuoteItemInput{
			{Name: "Soleira Travertino", Quantity: dec("1.00"), UnitPrice: dec("200.00")},
			{Name: "Bancada Granito", Quantity: dec("1.00"), UnitPrice: dec("900.00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Soleira Travertino", quote.Items[0].Name)
	assert.Equal(t, "Bancada Granito", quote.Items[1].Name)

	stored := m.quoteItems[quote.ID]
	require.Len(t, stored, 2)
	assert.Equal(t, 0, stored[0].Position)
	assert.Equal(t, 1, stored[1].Position)
}

func TestQuoteReject_SoMudaStatus(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)

	rejected, err := uc.Reject(context.Background(), quote.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.QuoteStatusRejeitado, rejected.Status)
	assert.Nil(t, rejected.ProjectID)
	assert.Empty(t, m.projects, "rejeição não cria projeto")
}

func TestQuoteUpdate_SubstituiItensERecalculaValor(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), quote.ID, dto.CreateQuoteRequest{
		Items: []dto.QuoteItemInput{
			{Name: "Soleira Mármore", Quantity: dec("2.00"), UnitPrice: dec("150.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, dec("300.00").Equal(updated.Value))
	require.Len(t, updated.Items, 1, "lista de itens substituída por inteiro")
	assert.Equal(t, "Soleira Mármore", updated.Items[0].Name)
	assert.Equal(t, quote.Number, updated.Number, "número não muda na edição")
}

func TestQuoteUpdate_ItemInvalido_InvalidInput(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := newQuoteUseCase(m)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), quote.ID, dto.CreateQuoteRequest{
		Items: []dto.QuoteItemInput{{Name: "", Quantity: dec("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// dupQuoteRepo recusa as primeiras criações como colisão de número único.
type dupQuoteRepo struct {
	*memQuoteRepo
	failures *int
}

func (r *dupQuoteRepo) Create(q *entity.Quote) error {
	if *r.failures > 0 {
		*r.failures--
		return domain.ErrDuplicate
	}
	return r.memQuoteRepo.Create(q)
}

type dupTxRunner struct {
	m        *memStore
	failures int
}

func (r *dupTxRunner) Run(_ context.Context, fn func(
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
		&dupQuoteRepo{memQuoteRepo: &memQuoteRepo{m: r.m}, failures: &r.failures},
	)
}

func TestQuoteCreate_ColisaoDeNumero_Regera(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := NewQuoteUseCase(
		&dupTxRunner{m: m, failures: 2},
		&memQuoteRepo{m: m},
		&memCustomerRepo{m: m},
		&memProjectRepo{m: m},
	)

	quote, err := uc.Create(context.Background(), createQuoteRequest())
	require.NoError(t, err, "duas colisões ainda cabem nas tentativas")
	assert.Len(t, m.quotes, 1)
	assert.NotEmpty(t, quote.Number)
}

func TestQuoteCreate_ColisaoPersistente_Desiste(t *testing.T) {
	m := newMemStore()
	m.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Construtora Alfa"}
	uc := NewQuoteUseCase(
		&dupTxRunner{m: m, failures: 99},
		&memQuoteRepo{m: m},
		&memCustomerRepo{m: m},
		&memProjectRepo{m: m},
	)

	_, err := uc.Create(context.Background(), createQuoteRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, m.quotes)
}

func TestQuoteDelete_Inexistente_NotFound(t *testing.T) {
	m := newMemStore()
	uc := newQuoteUseCase(m)

	err := uc.Delete("nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
