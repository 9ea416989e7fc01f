package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de cliente.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

func validCustomerStatus(s string) bool {
	switch s {
	case entity.CustomerStatusAtivo, entity.CustomerStatusPendente, entity.CustomerStatusInativo:
		return true
	}
	return false
}

// Create cadastra o cliente. Email é único na base.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.CustomerStatusAtivo
	}
	if !validCustomerStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		CpfCnpj:     in.CpfCnpj,
		Status:      status,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Notes:       in.Notes,
		CreatedAt:   now,
		LastContact: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update edita o cliente e renova LastContact.
func (uc *CustomerUseCase) Update(id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" && !validCustomerStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Status != "" {
		customer.Status = in.Status
	}
	customer.Phone = in.Phone
	customer.CpfCnpj = in.CpfCnpj
	customer.Address = in.Address
	customer.City = in.City
	customer.State = in.State
	customer.ZipCode = in.ZipCode
	customer.Notes = in.Notes
	customer.LastContact = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List devolve todos os clientes; term filtra por nome, email ou cidade.
func (uc *CustomerUseCase) List(term string) ([]*dto.CustomerResponse, error) {
	var (
		customers []*entity.Customer
		err       error
	)
	if term == "" {
		customers, err = uc.customerRepo.List()
	} else {
		customers, err = uc.customerRepo.Search(term)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Delete remove o cliente. Com projetos ou OS vinculados o banco recusa (FK
// RESTRICT) e o repositório devolve Conflict.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		CpfCnpj:       c.CpfCnpj,
		Status:        c.Status,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		ZipCode:       c.ZipCode,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		LastContact:   c.LastContact,
		ProjectsCount: c.ProjectsCount,
	}
}
