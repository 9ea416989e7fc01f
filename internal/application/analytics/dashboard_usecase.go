package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// DashboardUseCase monta o resumo da tela inicial.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// GetStats dispara as consultas de contagem e receita em paralelo e consolida.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	type countsResult struct {
		counts repository.DashboardCounts
		err    error
	}
	type revenueResult struct {
		total   decimal.Decimal
		monthly decimal.Decimal
		err     error
	}

	countsCh := make(chan countsResult, 1)
	revenueCh := make(chan revenueResult, 1)

	go func() {
		counts, err := uc.dashboardRepo.GetCounts(ctx)
		countsCh <- countsResult{counts: counts, err: err}
	}()
	go func() {
		total, monthly, err := uc.dashboardRepo.GetRevenue(ctx)
		revenueCh <- revenueResult{total: total, monthly: monthly, err: err}
	}()

	cr := <-countsCh
	if cr.err != nil {
		return nil, cr.err
	}
	rr := <-revenueCh
	if rr.err != nil {
		return nil, rr.err
	}

	return &dto.DashboardStatsResponse{
		CustomersCount:         cr.counts.Customers,
		ProjectsCount:          cr.counts.Projects,
		ActiveProjectsCount:    cr.counts.ActiveProjects,
		OrdersCount:            cr.counts.Orders,
		PendingOrdersCount:     cr.counts.PendingOrders,
		QuotesCount:            cr.counts.Quotes,
		MaterialsCount:         cr.counts.Materials,
		LowStockMaterialsCount: cr.counts.LowStockMaterials,
		TotalRevenue:           rr.total,
		MonthlyRevenue:         rr.monthly,
	}, nil
}
