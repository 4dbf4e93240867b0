package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrNotOwner    = errors.New("job not owned by user")
)

type Job struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CreatedAt       time.Time
	Title           string
	CompanyName     string
	Description     string
	LocationCountry string
	LocationState   string
	LocationCity    string
	JobType         string
}

// JobSearchFilter is one filter snapshot. Empty string fields mean "any";
// a nil OwnerID means no owner constraint (public listing).
type JobSearchFilter struct {
	Term     string
	JobType  string
	Country  string
	State    string
	OwnerID  *uuid.UUID
	PageSize int
	Page     int
}

func (f JobSearchFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// JobRepository stores listings. Search returns one page of matches plus the
// total match count over the full matching set. Matching is case-insensitive
// substring over the description, with the term taken literally (LIKE
// wildcards have no special meaning); job type, country, state, and owner
// are exact. Order is creation time descending, id ascending as tie-break.
type JobRepository interface {
	Search(ctx context.Context, f JobSearchFilter) ([]Job, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Create(ctx context.Context, job Job) error
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// likeEscaper neutralizes LIKE metacharacters so the search term is a
// literal substring, matching the in-memory implementation. Backslash is
// Postgres's default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const jobSearchWhere = `
	WHERE ($1 = '' OR description ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR job_type = $2)
	  AND ($3 = '' OR location_country = $3)
	  AND ($4 = '' OR location_state = $4)
	  AND ($5::uuid IS NULL OR user_id = $5)`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// Search runs the count and page queries inside one read-only
// repeatable-read transaction so both see the same snapshot.
func (r *PostgresJobRepository) Search(ctx context.Context, f JobSearchFilter) ([]Job, int, error) {
	tx, err := r.db.BeginRead(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	var owner any
	if f.OwnerID != nil {
		owner = *f.OwnerID
	}
	term := likeEscaper.Replace(f.Term)

	var total int
	row := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs`+jobSearchWhere,
		term, f.JobType, f.Country, f.State, owner,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := tx.Query(ctx,
		`SELECT id, user_id, created_at, title, company_name, description,
		        location_country, location_state, location_city, job_type
		 FROM jobs`+jobSearchWhere+`
		 ORDER BY created_at DESC, id ASC
		 LIMIT $6 OFFSET $7`,
		term, f.JobType, f.Country, f.State, owner, f.PageSize, f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Job, 0, f.PageSize)
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.OwnerID, &j.CreatedAt, &j.Title, &j.CompanyName, &j.Description,
			&j.LocationCountry, &j.LocationState, &j.LocationCity, &j.JobType,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, created_at, title, company_name, description,
		        location_country, location_state, location_city, job_type
		 FROM jobs WHERE id = $1`,
		id,
	)

	var j Job
	if err := row.Scan(
		&j.ID, &j.OwnerID, &j.CreatedAt, &j.Title, &j.CompanyName, &j.Description,
		&j.LocationCountry, &j.LocationState, &j.LocationCity, &j.JobType,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, job Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, user_id, created_at, title, company_name, description,
		                   location_country, location_state, location_city, job_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		job.ID, job.OwnerID, job.CreatedAt, job.Title, job.CompanyName, job.Description,
		job.LocationCountry, job.LocationState, job.LocationCity, job.JobType,
	)
	return err
}

// Update writes content fields of a listing. The owner predicate lives in the
// statement itself: a row owned by someone else is never touched, whatever the
// caller believes.
func (r *PostgresJobRepository) Update(ctx context.Context, job Job) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $3, company_name = $4, description = $5,
		     location_country = $6, location_state = $7, location_city = $8, job_type = $9
		 WHERE id = $1 AND user_id = $2`,
		job.ID, job.OwnerID, job.Title, job.CompanyName, job.Description,
		job.LocationCountry, job.LocationState, job.LocationCity, job.JobType,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.missReason(ctx, job.ID)
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.missReason(ctx, id)
	}
	return nil
}

func (r *PostgresJobRepository) missReason(ctx context.Context, id uuid.UUID) error {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrNotOwner
	}
	return ErrJobNotFound
}
