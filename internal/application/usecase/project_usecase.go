package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/application/workflow"
	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

// ProjectUseCase casos de uso de projeto: CRUD, vínculos de material e a guarda
// de exclusão (projeto com OS não é removido).
type ProjectUseCase struct {
	txRunner     workflow.TxRunner
	projectRepo  repository.ProjectRepository
	customerRepo repository.CustomerRepository
	materialRepo repository.MaterialRepository
	orderRepo    repository.OrderRepository
}

func NewProjectUseCase(
	txRunner workflow.TxRunner,
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	materialRepo repository.MaterialRepository,
	orderRepo repository.OrderRepository,
) *ProjectUseCase {
	return &ProjectUseCase{
		txRunner:     txRunner,
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		materialRepo: materialRepo,
		orderRepo:    orderRepo,
	}
}

func validProjectStatus(s string) bool {
	switch s {
	case entity.ProjectStatusEmMedicao, entity.ProjectStatusAprovado, entity.ProjectStatusEmProducao,
		entity.ProjectStatusInstalacao, entity.ProjectStatusConcluido, entity.ProjectStatusCancelado:
		return true
	}
	return false
}

// Create cadastra o projeto para um cliente existente.
func (uc *ProjectUseCase) Create(in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Name == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectStatusEmMedicao
	}
	if !validProjectStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Progress < 0 || in.Progress > 100 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CustomerID:  in.CustomerID,
		Status:      status,
		Area:        in.Area,
		Cost:        in.Cost,
		Progress:    in.Progress,
		Deadline:    in.Deadline,
		Location:    in.Location,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, err
	}
	return uc.GetByID(project.ID)
}

// Update edita o projeto.
func (uc *ProjectUseCase) Update(id string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" && !validProjectStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Progress < 0 || in.Progress > 100 {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.CustomerID != "" {
		project.CustomerID = in.CustomerID
	}
	if in.Status != "" {
		project.Status = in.Status
	}
	project.Area = in.Area
	project.Cost = in.Cost
	project.Progress = in.Progress
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}
	project.Location = in.Location
	project.Description = in.Description
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// AddMaterial vincula um material ao projeto. Cost zero assume Quantity×UnitCost
// do material no momento do vínculo.
func (uc *ProjectUseCase) AddMaterial(projectID string, in dto.AddProjectMaterialRequest) (*dto.ProjectResponse, error) {
	if in.MaterialID == "" || in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	cost := in.Cost
	if cost.IsZero() {
		cost = in.Quantity.Mul(material.UnitCost)
	}
	pm := &entity.ProjectMaterial{
		ProjectID:  projectID,
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		Cost:       cost,
		CreatedAt:  time.Now(),
	}
	if err := uc.projectRepo.AddMaterial(pm); err != nil {
		return nil, err
	}
	return uc.GetByID(projectID)
}

// RemoveMaterial desfaz o vínculo projeto-material.
func (uc *ProjectUseCase) RemoveMaterial(projectID, materialID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.projectRepo.RemoveMaterial(projectID, materialID); err != nil {
		return nil, err
	}
	return uc.GetByID(projectID)
}

func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(project), nil
}

// List devolve todos os projetos; term filtra por nome, cliente ou local;
// customerID restringe a um cliente.
func (uc *ProjectUseCase) List(term, customerID string) ([]*dto.ProjectResponse, error) {
	var (
		projects []*entity.Project
		err      error
	)
	switch {
	case customerID != "":
		projects, err = uc.projectRepo.ListByCustomer(customerID)
	case term != "":
		projects, err = uc.projectRepo.Search(term)
	default:
		projects, err = uc.projectRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// Delete remove o projeto, seus vínculos de material e desliga os orçamentos
// apontando para ele. Projeto com OS vinculada não é removido: Conflict.
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	count, err := uc.orderRepo.CountByProject(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: projeto possui ordens de serviço vinculadas", domain.ErrConflict)
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		_ repository.MaterialRepository,
		_ repository.StockMovementRepository,
		projectRepo repository.ProjectRepository,
		quoteRepo repository.QuoteRepository,
	) error {
		if err := quoteRepo.UnlinkFromProject(id); err != nil {
			return err
		}
		return projectRepo.Delete(id)
	})
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	materials := make([]dto.ProjectMaterialResponse, 0, len(p.Materials))
	for _, pm := range p.Materials {
		materials = append(materials, dto.ProjectMaterialResponse{
			MaterialID:   pm.MaterialID,
			MaterialName: pm.MaterialName,
			Quantity:     pm.Quantity,
			Cost:         pm.Cost,
			CreatedAt:    pm.CreatedAt,
		})
	}
	return &dto.ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		Status:       p.Status,
		Area:         p.Area,
		Cost:         p.Cost,
		Progress:     p.Progress,
		Deadline:     p.Deadline,
		Location:     p.Location,
		Description:  p.Description,
		ImageCount:   p.ImageCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Materials:    materials,
	}
}
