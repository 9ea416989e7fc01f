package repository

import "github.com/granitflow/granitflow-api/internal/domain/entity"

// OrderRepository define o porto de persistência para Order (OS) e seus itens.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	// GetByID carrega a OS com nomes de cliente/projeto e itens ordenados.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate carrega a OS com a linha bloqueada (SELECT FOR UPDATE) e os
	// itens, sem os nomes juntados. Usar dentro de transação na aprovação.
	GetForUpdate(id string) (*entity.Order, error)
	List() ([]*entity.Order, error)
	Search(term string) ([]*entity.Order, error)
	Update(order *entity.Order) error
	DeleteItems(orderID string) error
	Delete(id string) error
	// CountByProject conta OS vinculadas ao projeto (guarda de exclusão).
	CountByProject(projectID string) (int, error)
}
