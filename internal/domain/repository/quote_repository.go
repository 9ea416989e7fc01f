package repository

import "github.com/granitflow/granitflow-api/internal/domain/entity"

// QuoteRepository define o porto de persistência para Quote e seus itens.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	// GetByID carrega o orçamento com nome do cliente e itens ordenados.
	GetByID(id string) (*entity.Quote, error)
	// GetForUpdate carrega o orçamento com a linha bloqueada (SELECT FOR UPDATE),
	// sem o nome juntado. Usar dentro de transação na aprovação.
	GetForUpdate(id string) (*entity.Quote, error)
	List() ([]*entity.Quote, error)
	Search(term string) ([]*entity.Quote, error)
	Update(quote *entity.Quote) error
	// DeleteItems remove todos os itens do orçamento (edição substitui a lista inteira).
	DeleteItems(quoteID string) error
	Delete(id string) error
	// UnlinkFromProject zera project_id dos orçamentos ligados ao projeto (guarda de exclusão).
	UnlinkFromProject(projectID string) error
}
