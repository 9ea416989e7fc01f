package entity

import "time"

// Status válidos para Customer.
const (
	CustomerStatusAtivo    = "ativo"
	CustomerStatusPendente = "pendente"
	CustomerStatusInativo  = "inativo"
)

// Customer representa um cliente da marmoraria.
type Customer struct {
	ID          string
	Name        string
	Email       string // único
	Phone       string
	CpfCnpj     string
	Status      string // ativo, pendente, inativo
	Address     string
	City        string
	State       string
	ZipCode     string
	Notes       string
	CreatedAt   time.Time
	LastContact time.Time

	ProjectsCount int // join
}
