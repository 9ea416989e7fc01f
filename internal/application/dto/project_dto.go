package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest corpo de criação/edição de projeto.
type CreateProjectRequest struct {
	Name        string          `json:"name"`
	CustomerID  string          `json:"customerId"`
	Status      string          `json:"status"`
	Area        decimal.Decimal `json:"area"`
	Cost        decimal.Decimal `json:"cost"`
	Progress    int             `json:"progress"`
	Deadline    *time.Time      `json:"deadline"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
}

// ProjectResponse projeto com nome do cliente e vínculos de material.
type ProjectResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	CustomerID   string                    `json:"customerId"`
	CustomerName string                    `json:"customerName"`
	Status       string                    `json:"status"`
	Area         decimal.Decimal           `json:"area"`
	Cost         decimal.Decimal           `json:"cost"`
	Progress     int                       `json:"progress"`
	Deadline     *time.Time                `json:"deadline,omitempty"`
	Location     string                    `json:"location"`
	Description  string                    `json:"description"`
	ImageCount   int                       `json:"imageCount"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
	Materials    []ProjectMaterialResponse `json:"materials,omitempty"`
}

// AddProjectMaterialRequest vincula um material ao projeto.
type AddProjectMaterialRequest struct {
	MaterialID string          `json:"materialId"`
	Quantity   decimal.Decimal `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
}

// ProjectMaterialResponse vínculo projeto-material.
type ProjectMaterialResponse struct {
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"createdAt"`
}
