package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardCounts resultado cru das contagens do dashboard.
type DashboardCounts struct {
	Customers         int
	Projects          int
	ActiveProjects    int
	Orders            int
	PendingOrders     int
	Quotes            int
	Materials         int
	LowStockMaterials int
}

// DashboardRepository define as consultas de leitura do dashboard.
// Implementações são read-only. Os conjuntos de status usados nos filtros são os
// de entity (ProjectActiveStatuses, OrderPendingStatuses, OrderRevenueStatuses).
type DashboardRepository interface {
	// GetCounts devolve todas as contagens em uma única consulta.
	GetCounts(ctx context.Context) (DashboardCounts, error)
	// GetRevenue devolve a receita realizada total e a do mês corrente
	// (mês/ano no horário local do servidor). COALESCE garante zero sem vendas.
	GetRevenue(ctx context.Context) (total, monthly decimal.Decimal, err error)
}
