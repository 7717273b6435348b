package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// ApplicationRepo implements storage.ApplicationRepository on PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	query, args, err := buildApplicationInsert(app)
	if err != nil {
		return nil, err
	}

	created, err := r.queryOne(ctx, query, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
			log.WithError(err).Errorf("Error creating application for user %s (constraint violation)", app.UserID)
			return nil, fmt.Errorf("failed to create application: %w", storage.ErrConflict)
		}
		log.WithError(err).Errorf("Error creating application for user %s", app.UserID)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", created.ID)
	return created, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query, args := builder().
		Select(applicationColumns...).
		From(entsql.Table(applicationsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	app, err := r.queryOne(ctx, query, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found with ID: %s", id)
			return nil, storage.ErrNotFound
		}
		log.WithError(err).Errorf("Error retrieving application by ID %s", id)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return app, nil
}

func (r *ApplicationRepo) List(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	query, args := buildApplicationListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Error querying applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		log.WithError(err).Error("Error scanning applications")
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	query, args, err := buildApplicationUpdate(app)
	if err != nil {
		return nil, err
	}

	updated, err := r.queryOne(ctx, query, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found for update with ID: %s", app.ID)
			return nil, storage.ErrNotFound
		}
		log.WithError(err).Errorf("Error updating application %s", app.ID)
		return nil, fmt.Errorf("failed to update application %s: %w", app.ID, err)
	}
	return updated, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args := builder().
		Delete(applicationsTable).
		Where(entsql.EQ("id", id)).
		Query()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		log.WithError(err).Errorf("Error deleting application %s", id)
		return fmt.Errorf("failed to delete application %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Application not found for deletion with ID: %s", id)
		return storage.ErrNotFound
	}

	log.Printf("Application deleted successfully with ID: %s", id)
	return nil
}

func (r *ApplicationRepo) queryOne(ctx context.Context, query string, args []any) (*models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	app, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		return nil, err
	}
	return &app, nil
}
