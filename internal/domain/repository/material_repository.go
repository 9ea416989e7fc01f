package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
)

// MaterialRepository define o porto de persistência para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloqueia a linha do material (SELECT FOR UPDATE); usar dentro de transação.
	GetForUpdate(id string) (*entity.Material, error)
	List() ([]*entity.Material, error)
	Search(term string) ([]*entity.Material, error)
	Update(material *entity.Material) error
	// UpdateStock altera apenas o saldo (usado pelos fluxos de movimento/aprovação).
	UpdateStock(materialID string, stock decimal.Decimal, updatedAt time.Time) error
	TouchLastPurchase(materialID string, at time.Time) error
	Delete(id string) error
}
