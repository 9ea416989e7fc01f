package usecase

import (
	"context"
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

// Fakes em memória só com os métodos que o caso de uso chama; o resto fica no
// interface embutido e estoura se for chamado por engano.

type matStore struct {
	materials map[string]*entity.Material
	movements []*entity.StockMovement
}

type fakeMaterialRepo struct {
	repository.MaterialRepository
	s *matStore
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	r.s.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.s.materials[id], nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.s.materials[id], nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	r.s.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) UpdateStock(materialID string, stock decimal.Decimal, updatedAt time.Time) error {
	if m, ok := r.s.materials[materialID]; ok {
		m.CurrentStock = stock
		m.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeMaterialRepo) TouchLastPurchase(materialID string, at time.Time) error {
	if m, ok := r.s.materials[materialID]; ok {
		m.LastPurchase = &at
	}
	return nil
}

func (r *fakeMaterialRepo) List() ([]*entity.Material, error) {
	out := make([]*entity.Material, 0, len(r.s.materials))
	for _, m := range r.s.materials {
		out = append(out, m)
	}
	return out, nil
}

type fakeMovementRepo struct {
	repository.StockMovementRepository
	s *matStore
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByMaterial(materialID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

// matTxRunner executa o callback direto, sem transação real.
type matTxRunner struct {
	s *matStore
}

func (r *matTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	projectRepo repository.ProjectRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return fn(nil, &fakeMaterialRepo{s: r.s}, &fakeMovementRepo{s: r.s}, nil, nil)
}

func newMaterialUseCase(s *matStore) *MaterialUseCase {
	return NewMaterialUseCase(&matTxRunner{s: s}, &fakeMaterialRepo{s: s}, &fakeMovementRepo{s: s})
}

func newMatStore() *matStore {
	return &matStore{materials: map[string]*entity.Material{}}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMaterialCreate_SaldoInicialGeraPrimeiraLinhaDoRazao(t *testing.T) {
	s := newMatStore()
	uc := newMaterialUseCase(s)

	material, err := uc.Create(context.Background(), dto.CreateMaterialRequest{
		Name:         "Granito Cinza Andorinha",
		Type:         "granito",
		CurrentStock: d("12.00"),
		MinStock:     d("3.00"),
		UnitCost:     d("280.00"),
		UnitPrice:    d("450.00"),
	})
	require.NoError(t, err)

	assert.True(t, d("12.00").Equal(material.CurrentStock))
	assert.NotNil(t, material.LastPurchase, "saldo inicial marca a última compra")

	require.Len(t, s.movements, 1)
	mv := s.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mv.Type)
	assert.True(t, d("12.00").Equal(mv.Quantity))
	assert.True(t, d("12.00").Equal(mv.Balance))
	assert.Equal(t, "Saldo inicial", mv.Reference)
}

func TestMaterialCreate_SemSaldoInicial_SemRazao(t *testing.T) {
	s := newMatStore()
	uc := newMaterialUseCase(s)

	material, err := uc.Create(context.Background(), dto.CreateMaterialRequest{
		Name: "Quartzo Branco",
		Type: "quartzo",
	})
	require.NoError(t, err)

	assert.Nil(t, material.LastPurchase)
	assert.Empty(t, s.movements)
}

func TestRegisterMovement_EntradaSomaEMarcaCompra(t *testing.T) {
	s := newMatStore()
	s.materials["mat-1"] = &entity.Material{ID: "mat-1", Name: "Granito", CurrentStock: d("5.00")}
	uc := newMaterialUseCase(s)

	mv, err := uc.RegisterMovement(context.Background(), "mat-1", dto.RegisterMovementRequest{
		Type:      entity.MovementTypeEntrada,
		Quantity:  d("3.50"),
		Reference: "NF 1234",
	})
	require.NoError(t, err)

	assert.True(t, d("8.50").Equal(mv.Balance))
	assert.True(t, d("8.50").Equal(s.materials["mat-1"].CurrentStock))
	assert.NotNil(t, s.materials["mat-1"].LastPurchase)
	assert.Equal(t, "NF 1234", mv.Reference)
}

func TestRegisterMovement_SaidaSubtrai(t *testing.T) {
	s := newMatStore()
	s.materials["mat-1"] = &entity.Material{ID: "mat-1", Name: "Granito", CurrentStock: d("5.00")}
	uc := newMaterialUseCase(s)

	mv, err := uc.RegisterMovement(context.Background(), "mat-1", dto.RegisterMovementRequest{
		Type:     entity.MovementTypeSaida,
		Quantity: d("2.00"),
	})
	require.NoError(t, err)

	assert.True(t, d("3.00").Equal(mv.Balance))
	assert.True(t, d("3.00").Equal(s.materials["mat-1"].CurrentStock))
	assert.Nil(t, s.materials["mat-1"].LastPurchase, "saída não marca compra")
}

func TestRegisterMovement_SaidaMaiorQueSaldo_SemEfeitos(t *testing.T) {
	s := newMatStore()
	s.materials["mat-1"] = &entity.Material{ID: "mat-1", Name: "Granito Preto", CurrentStock: d("2.00")}
	uc := newMaterialUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "mat-1", dto.RegisterMovementRequest{
		Type:     entity.MovementTypeSaida,
		Quantity: d("7.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Granito Preto", stockErr.MaterialName)
	assert.True(t, d("2.00").Equal(stockErr.Available))
	assert.True(t, d("7.00").Equal(stockErr.Required))

	assert.True(t, d("2.00").Equal(s.materials["mat-1"].CurrentStock))
	assert.Empty(t, s.movements)
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	s := newMatStore()
	uc := newMaterialUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "mat-1", dto.RegisterMovementRequest{
		Type:     "transferencia",
		Quantity: d("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterialUpdate_NaoMexeNoSaldo(t *testing.T) {
	s := newMatStore()
	s.materials["mat-1"] = &entity.Material{ID: "mat-1", Name: "Granito", Type: "granito", CurrentStock: d("9.00")}
	uc := newMaterialUseCase(s)

	updated, err := uc.Update("mat-1", dto.CreateMaterialRequest{
		Name:         "Granito Amarelo Ornamental",
		CurrentStock: d("999.00"),
		UnitPrice:    d("520.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Granito Amarelo Ornamental", updated.Name)
	assert.True(t, d("9.00").Equal(updated.CurrentStock), "edição ignora o saldo informado")
}

func TestLowStock_FiltraPontoDeReposicao(t *testing.T) {
	s := newMatStore()
	s.materials["a"] = &entity.Material{ID: "a", Name: "A", CurrentStock: d("2.00"), MinStock: d("5.00")}
	s.materials["b"] = &entity.Material{ID: "b", Name: "B", CurrentStock: d("10.00"), MinStock: d("5.00")}
	s.materials["c"] = &entity.Material{ID: "c", Name: "C", CurrentStock: d("5.00"), MinStock: d("5.00")}
	uc := newMaterialUseCase(s)

	low, err := uc.LowStock()
	require.NoError(t, err)

	ids := make([]string, 0, len(low))
	for _, m := range low {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, ids, "saldo igual ao mínimo também conta")
}
