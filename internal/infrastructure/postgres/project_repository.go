package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/granitflow/granitflow-api/internal/domain"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementação de ProjectRepository sobre PostgreSQL (usável com pool ou tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository constrói o adaptador de persistência de projetos. Passar pool ou tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `p.id, p.name, p.customer_id, p.status, p.area, p.cost, p.progress, p.deadline, p.location, p.description, p.image_count, p.created_at, p.updated_at, c.name AS customer_name`

// Create persiste um novo projeto.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, customer_id, status, area, cost, progress, deadline, location, description, image_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.CustomerID, project.Status, project.Area,
		project.Cost, project.Progress, project.Deadline, project.Location,
		project.Description, project.ImageCount, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.CustomerID, &p.Status, &p.Area, &p.Cost, &p.Progress,
		&p.Deadline, &p.Location, &p.Description, &p.ImageCount, &p.CreatedAt, &p.UpdatedAt,
		&p.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtém o projeto com nome do cliente e vínculos de material.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p JOIN customers c ON c.id = p.customer_id
		WHERE p.id = $1`
	p, err := scanProject(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	materials, err := r.ListMaterials(id)
	if err != nil {
		return nil, err
	}
	p.Materials = materials
	return p, nil
}

func (r *ProjectRepo) list(query string, args ...any) ([]*entity.Project, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// List lista todos os projetos, mais recentes primeiro. Sem vínculos de material.
func (r *ProjectRepo) List() ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p JOIN customers c ON c.id = p.customer_id
		ORDER BY p.created_at DESC`
	return r.list(query)
}

// Search filtra por nome do projeto, do cliente ou local (case-insensitive).
func (r *ProjectRepo) Search(term string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p JOIN customers c ON c.id = p.customer_id
		WHERE p.name ILIKE $1 OR c.name ILIKE $1 OR p.location ILIKE $1
		ORDER BY p.created_at DESC`
	return r.list(query, "%"+term+"%")
}

// ListByCustomer lista os projetos de um cliente.
func (r *ProjectRepo) ListByCustomer(customerID string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p JOIN customers c ON c.id = p.customer_id
		WHERE p.customer_id = $1
		ORDER BY p.created_at DESC`
	return r.list(query, customerID)
}

// Update atualiza o projeto.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, customer_id = $3, status = $4, area = $5, cost = $6,
			progress = $7, deadline = $8, location = $9, description = $10, image_count = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.CustomerID, project.Status, project.Area,
		project.Cost, project.Progress, project.Deadline, project.Location,
		project.Description, project.ImageCount, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete remove o projeto e, por cascata, seus vínculos de material.
func (r *ProjectRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// AddMaterial vincula um material ao projeto. Vínculo repetido vira ErrDuplicate
// (chave composta projeto+material).
func (r *ProjectRepo) AddMaterial(pm *entity.ProjectMaterial) error {
	query := `
		INSERT INTO project_materials (project_id, material_id, quantity, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		pm.ProjectID, pm.MaterialID, pm.Quantity, pm.Cost, pm.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project material: %w", err)
	}
	return nil
}

// RemoveMaterial desfaz o vínculo projeto-material.
func (r *ProjectRepo) RemoveMaterial(projectID, materialID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM project_materials WHERE project_id = $1 AND material_id = $2`,
		projectID, materialID,
	)
	if err != nil {
		return fmt.Errorf("delete project material: %w", err)
	}
	return nil
}

// ListMaterials lista os vínculos de material do projeto com o nome do material.
func (r *ProjectRepo) ListMaterials(projectID string) ([]*entity.ProjectMaterial, error) {
	query := `
		SELECT pm.project_id, pm.material_id, pm.quantity, pm.cost, pm.created_at, m.name
		FROM project_materials pm JOIN materials m ON m.id = pm.material_id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.ProjectMaterial
	for rows.Next() {
		var pm entity.ProjectMaterial
		if err := rows.Scan(&pm.ProjectID, &pm.MaterialID, &pm.Quantity, &pm.Cost, &pm.CreatedAt, &pm.MaterialName); err != nil {
			return nil, fmt.Errorf("scan project material: %w", err)
		}
		materials = append(materials, &pm)
	}
	return materials, rows.Err()
}
