package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/granitflow/granitflow-api/internal/domain/entity"
	"github.com/granitflow/granitflow-api/internal/domain/repository"
)

var _ repository.ScheduleEventRepository = (*ScheduleEventRepo)(nil)

// ScheduleEventRepo implementação da agenda sobre PostgreSQL (usável com pool ou tx).
type ScheduleEventRepo struct {
	q Querier
}

// NewScheduleEventRepository constrói o adaptador da agenda. Passar pool ou tx (Querier).
func NewScheduleEventRepository(q Querier) *ScheduleEventRepo {
	return &ScheduleEventRepo{q: q}
}

const eventColumns = `e.id, e.type, e.customer_id, e.project_id, e.time, e.date, e.location, e.team, e.status, e.created_at, e.updated_at, c.name AS customer_name`

// Create persiste um novo evento.
func (r *ScheduleEventRepo) Create(event *entity.ScheduleEvent) error {
	query := `
		INSERT INTO schedule_events (id, type, customer_id, project_id, time, date, location, team, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Type, event.CustomerID, event.ProjectID, event.Time, event.Date,
		event.Location, event.Team, event.Status, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule event: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.ScheduleEvent, error) {
	var e entity.ScheduleEvent
	err := row.Scan(
		&e.ID, &e.Type, &e.CustomerID, &e.ProjectID, &e.Time, &e.Date,
		&e.Location, &e.Team, &e.Status, &e.CreatedAt, &e.UpdatedAt, &e.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID obtém o evento com nome do cliente.
func (r *ScheduleEventRepo) GetByID(id string) (*entity.ScheduleEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM schedule_events e JOIN customers c ON c.id = e.customer_id
		WHERE e.id = $1`
	e, err := scanEvent(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule event: %w", err)
	}
	return e, nil
}

// List lista os eventos por data e hora; date filtra pelo dia quando informado.
func (r *ScheduleEventRepo) List(date *time.Time) ([]*entity.ScheduleEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM schedule_events e JOIN customers c ON c.id = e.customer_id`
	var args []any
	if date != nil {
		query += ` WHERE e.date::date = $1::date`
		args = append(args, *date)
	}
	query += ` ORDER BY e.date, e.time`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule events: %w", err)
	}
	defer rows.Close()

	var events []*entity.ScheduleEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update atualiza o evento.
func (r *ScheduleEventRepo) Update(event *entity.ScheduleEvent) error {
	query := `
		UPDATE schedule_events SET type = $2, customer_id = $3, project_id = $4, time = $5,
			date = $6, location = $7, team = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Type, event.CustomerID, event.ProjectID, event.Time, event.Date,
		event.Location, event.Team, event.Status, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update schedule event: %w", err)
	}
	return nil
}

// Delete remove o evento.
func (r *ScheduleEventRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM schedule_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule event: %w", err)
	}
	return nil
}
