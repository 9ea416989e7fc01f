package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

type fakeDashboardRepo struct {
	counts     repository.DashboardCounts
	countsErr  error
	total      decimal.Decimal
	monthly    decimal.Decimal
	revenueErr error
}

func (r *fakeDashboardRepo) GetCounts(context.Context) (repository.DashboardCounts, error) {
	return r.counts, r.countsErr
}

func (r *fakeDashboardRepo) GetRevenue(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return r.total, r.monthly, r.revenueErr
}

func TestGetStats_ConsolidaContagensEReceita(t *testing.T) {
	repo := &fakeDashboardRepo{
		counts: repository.DashboardCounts{
			Customers:         12,
			Projects:          8,
			ActiveProjects:    3,
			Orders:            20,
			PendingOrders:     5,
			Quotes:            15,
			Materials:         30,
			LowStockMaterials: 4,
		},
		total:   decimal.RequireFromString("125000.00"),
		monthly: decimal.RequireFromString("18500.50"),
	}
	uc := NewDashboardUseCase(repo)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.CustomersCount)
	assert.Equal(t, 3, stats.ActiveProjectsCount)
	assert.Equal(t, 5, stats.PendingOrdersCount)
	assert.Equal(t, 4, stats.LowStockMaterialsCount)
	assert.True(t, decimal.RequireFromString("125000.00").Equal(stats.TotalRevenue))
	assert.True(t, decimal.RequireFromString("18500.50").Equal(stats.MonthlyRevenue))
}

func TestGetStats_PropagaErro(t *testing.T) {
	errDB := errors.New("conexão caiu")

	_, err := NewDashboardUseCase(&fakeDashboardRepo{countsErr: errDB}).GetStats(context.Background())
	assert.ErrorIs(t, err, errDB)

	_, err = NewDashboardUseCase(&fakeDashboardRepo{revenueErr: errDB}).GetStats(context.Background())
	assert.ErrorIs(t, err, errDB)
}
