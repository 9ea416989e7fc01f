package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status válidos para Project.
const (
	ProjectStatusEmMedicao  = "em_medicao"
	ProjectStatusAprovado   = "aprovado"
	ProjectStatusEmProducao = "em_producao"
	ProjectStatusInstalacao = "instalacao"
	ProjectStatusConcluido  = "concluido"
	ProjectStatusCancelado  = "cancelado"
)

// ProjectActiveStatuses define o que o dashboard conta como "projeto ativo".
var ProjectActiveStatuses = []string{ProjectStatusAprovado, ProjectStatusEmProducao, ProjectStatusInstalacao}

// Project representa um projeto de fabricação/instalação para um cliente.
type Project struct {
	ID          string
	Name        string
	CustomerID  string
	Status      string
	Area        decimal.Decimal
	Cost        decimal.Decimal
	Progress    int // 0-100
	Deadline    *time.Time
	Location    string
	Description string
	ImageCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Campos de leitura (joins), não persistidos na tabela projects.
	CustomerName string
	Materials    []*ProjectMaterial
}

// ProjectMaterial vincula um material ao projeto com quantidade e custo acordados.
// Cost é o custo registrado no momento do vínculo; a OS gerada copia esse valor.
type ProjectMaterial struct {
	ProjectID  string
	MaterialID string
	Quantity   decimal.Decimal
	Cost       decimal.Decimal
	CreatedAt  time.Time

	MaterialName string // join
}
