package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse resumo consolidado exibido na tela inicial.
type DashboardStatsResponse struct {
	CustomersCount         int             `json:"customersCount"`
	ProjectsCount          int             `json:"projectsCount"`
	ActiveProjectsCount    int             `json:"activeProjectsCount"`
	OrdersCount            int             `json:"ordersCount"`
	PendingOrdersCount     int             `json:"pendingOrdersCount"`
	QuotesCount            int             `json:"quotesCount"`
	MaterialsCount         int             `json:"materialsCount"`
	LowStockMaterialsCount int             `json:"lowStockMaterialsCount"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue         decimal.Decimal `json:"monthlyRevenue"`
}
