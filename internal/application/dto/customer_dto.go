package dto

import "time"

// CreateCustomerRequest corpo de criação/edição de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	CpfCnpj string `json:"cpfCnpj"`
	Status  string `json:"status"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Notes   string `json:"notes"`
}

// CustomerResponse cliente com contagem de projetos.
type CustomerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CpfCnpj       string    `json:"cpfCnpj"`
	Status        string    `json:"status"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zipCode"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	LastContact   time.Time `json:"lastContact"`
	ProjectsCount int       `json:"projectsCount"`
}
