package repository

import "github.com/granitflow/granitflow-api/internal/domain/entity"

// CustomerRepository define o porto de persistência para Customer (DIP).
// List e Search retornam a coleção completa, sem paginação (comportamento padrão da API).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Search(term string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
