package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
)

// uniqueViolationCode is the Postgres error code for unique constraint
// violations, raised on id collisions.
const uniqueViolationCode = "23505"

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

// serviceRow mirrors the services table; pq.StringArray handles the text[]
// tags column, which plain []string cannot scan.
type serviceRow struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Summary     string         `db:"summary"`
	Category    string         `db:"category"`
	Tags        pq.StringArray `db:"tags"`
	Pricing     string         `db:"pricing"`
	Status      string         `db:"status"`
	ContactInfo string         `db:"contact_info"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r serviceRow) toModel() *model.Service {
	return &model.Service{
		ID:          r.ID,
		Title:       r.Title,
		Summary:     r.Summary,
		Category:    r.Category,
		Tags:        append([]string{}, r.Tags...),
		Pricing:     r.Pricing,
		Status:      model.ServiceStatus(r.Status),
		ContactInfo: r.ContactInfo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const serviceColumns = `
	id, title, summary, category, tags, pricing, status, contact_info,
	created_at, updated_at
`

// listFilterClause matches the ListFilter semantics: exact category match
// and a case-insensitive OR-group over title, summary, category and tags.
const listFilterClause = `
	(COALESCE($1, '') = '' OR category = $1)
	AND (
		COALESCE($2, '') = ''
		OR title ILIKE '%' || $2 || '%'
		OR summary ILIKE '%' || $2 || '%'
		OR category ILIKE '%' || $2 || '%'
		OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%' || $2 || '%')
	)
`

func (r *serviceRepository) List(ctx context.Context, filter repository.ListFilter, page repository.PageParams) ([]*model.Service, int, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE ` + listFilterClause + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	var rows []serviceRow
	err := r.db.SelectContext(ctx, &rows, query, filter.Category, filter.Search, page.Take, page.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM services WHERE ` + listFilterClause
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, filter.Category, filter.Search); err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	services := make([]*model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, row.toModel())
	}
	return services, total, nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1
	`
	var row serviceRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return row.toModel(), nil
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (
			id, title, summary, category, tags, pricing, status, contact_info,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.Title,
		svc.Summary,
		svc.Category,
		pq.StringArray(svc.Tags),
		svc.Pricing,
		svc.Status,
		svc.ContactInfo,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET title = $1, summary = $2, category = $3, tags = $4, pricing = $5,
			status = $6, contact_info = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		svc.Title,
		svc.Summary,
		svc.Category,
		pq.StringArray(svc.Tags),
		svc.Pricing,
		svc.Status,
		svc.ContactInfo,
		svc.UpdatedAt,
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return checkRowsAffected(result)
}

func (r *serviceRepository) Patch(ctx context.Context, id uuid.UUID, patch model.ServicePatch) (*model.Service, error) {
	var updated *model.Service
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			SELECT ` + serviceColumns + `
			FROM services
			WHERE id = $1
			FOR UPDATE
		`
		var row serviceRow
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to get service: %w", err)
		}

		svc := row.toModel()
		patch.Apply(svc)
		svc.UpdatedAt = time.Now().UTC()

		update := `
			UPDATE services
			SET title = $1, summary = $2, category = $3, tags = $4, pricing = $5,
				status = $6, contact_info = $7, updated_at = $8
			WHERE id = $9
		`
		if _, err := tx.ExecContext(ctx, update,
			svc.Title,
			svc.Summary,
			svc.Category,
			pq.StringArray(svc.Tags),
			svc.Pricing,
			svc.Status,
			svc.ContactInfo,
			svc.UpdatedAt,
			svc.ID,
		); err != nil {
			return fmt.Errorf("failed to patch service: %w", err)
		}

		updated = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return checkRowsAffected(result)
}

func (r *serviceRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func checkRowsAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}
