package repository

import "github.com/granitflow/granitflow-api/internal/domain/entity"

// ProjectRepository define o porto de persistência para Project e seus vínculos de material.
type ProjectRepository interface {
	Create(project *entity.Project) error
	// GetByID carrega o projeto com nome do cliente e vínculos de material.
	GetByID(id string) (*entity.Project, error)
	List() ([]*entity.Project, error)
	Search(term string) ([]*entity.Project, error)
	ListByCustomer(customerID string) ([]*entity.Project, error)
	Update(project *entity.Project) error
	Delete(id string) error

	AddMaterial(pm *entity.ProjectMaterial) error
	RemoveMaterial(projectID, materialID string) error
	ListMaterials(projectID string) ([]*entity.ProjectMaterial, error)
}
