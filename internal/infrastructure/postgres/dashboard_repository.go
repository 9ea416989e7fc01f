package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de leitura para o resumo da tela inicial.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository constrói o adaptador do dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetCounts devolve todas as contagens em uma única ida ao banco.
// Os filtros de "ativo"/"pendente" usam os conjuntos de status de entity.
func (r *DashboardRepo) GetCounts(ctx context.Context) (repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM customers)                                           AS customers,
	    (SELECT COUNT(*) FROM projects)                                            AS projects,
	    (SELECT COUNT(*) FROM projects WHERE status = ANY($1))                     AS active_projects,
	    (SELECT COUNT(*) FROM orders)                                              AS orders,
	    (SELECT COUNT(*) FROM orders WHERE status = ANY($2))                       AS pending_orders,
	    (SELECT COUNT(*) FROM quotes)                                              AS quotes,
	    (SELECT COUNT(*) FROM materials)                                           AS materials,
	    (SELECT COUNT(*) FROM materials WHERE current_stock <= min_stock)          AS low_stock_materials`

	var counts repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, entity.ProjectActiveStatuses, entity.OrderPendingStatuses).Scan(
		&counts.Customers,
		&counts.Projects,
		&counts.ActiveProjects,
		&counts.Orders,
		&counts.PendingOrders,
		&counts.Quotes,
		&counts.Materials,
		&counts.LowStockMaterials,
	)
	if err != nil {
		return repository.DashboardCounts{}, fmt.Errorf("dashboard.GetCounts: %w", err)
	}
	return counts, nil
}

// GetRevenue devolve a receita realizada total e a do mês corrente. A janela
// mensal é pela data de criação da OS: uma OS criada no mês passado e editada
// neste não conta como receita deste mês. COALESCE garante zero em período sem
// vendas.
func (r *DashboardRepo) GetRevenue(ctx context.Context) (total, monthly decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(value), 0)                                 AS total,
	    COALESCE(SUM(value) FILTER (WHERE created_at >= $2), 0) AS monthly
	FROM orders
	WHERE status = ANY($1)`

	err = r.pool.QueryRow(ctx, query, entity.OrderRevenueStatuses, monthStart(time.Now())).Scan(&total, &monthly)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("dashboard.GetRevenue: %w", err)
	}
	return total, monthly, nil
}

// monthStart devolve o primeiro instante do mês de t, no fuso de t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
