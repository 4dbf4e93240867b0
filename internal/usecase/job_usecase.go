package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"job-board/internal/location"
	"job-board/internal/repository"

	"github.com/google/uuid"
)

var JobTypes = []string{"Full-Time", "Part-Time", "Contract"}

type JobInput struct {
	Title           string
	CompanyName     string
	Description     string
	LocationCountry string
	LocationState   string
	LocationCity    string
	JobType         string
}

type JobUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (repository.Job, error)
	Create(ctx context.Context, ownerID uuid.UUID, in JobInput) (repository.Job, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in JobInput) (repository.Job, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// DescriptionSanitizer strips unsafe markup from the rich-text description
// before it is stored.
type DescriptionSanitizer interface {
	Clean(html string) string
}

type Jobs struct {
	jobs      repository.JobRepository
	sanitizer DescriptionSanitizer
	cache     SearchCache
	logger    *log.Logger

	now func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, sanitizer DescriptionSanitizer, cache SearchCache, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, sanitizer: sanitizer, cache: cache, logger: logger, now: time.Now}
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return job, nil
}

func (u *Jobs) Create(ctx context.Context, ownerID uuid.UUID, in JobInput) (repository.Job, error) {
	if ownerID == uuid.Nil {
		return repository.Job{}, ErrUnauthorized
	}

	norm, err := u.normalize(in)
	if err != nil {
		return repository.Job{}, err
	}

	job := repository.Job{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		CreatedAt:       u.now().UTC(),
		Title:           norm.Title,
		CompanyName:     norm.CompanyName,
		Description:     norm.Description,
		LocationCountry: norm.LocationCountry,
		LocationState:   norm.LocationState,
		LocationCity:    norm.LocationCity,
		JobType:         norm.JobType,
	}

	if err := u.jobs.Create(ctx, job); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] create failed: %v", err)
		}
		return repository.Job{}, ErrInternal
	}

	u.invalidateSearch(ctx)
	return job, nil
}

func (u *Jobs) Update(ctx context.Context, id, ownerID uuid.UUID, in JobInput) (repository.Job, error) {
	if ownerID == uuid.Nil {
		return repository.Job{}, ErrUnauthorized
	}

	norm, err := u.normalize(in)
	if err != nil {
		return repository.Job{}, err
	}

	job := repository.Job{
		ID:              id,
		OwnerID:         ownerID,
		Title:           norm.Title,
		CompanyName:     norm.CompanyName,
		Description:     norm.Description,
		LocationCountry: norm.LocationCountry,
		LocationState:   norm.LocationState,
		LocationCity:    norm.LocationCity,
		JobType:         norm.JobType,
	}

	if err := u.jobs.Update(ctx, job); err != nil {
		return repository.Job{}, mapJobWriteError(err)
	}

	u.invalidateSearch(ctx)
	return u.Get(ctx, id)
}

func (u *Jobs) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrUnauthorized
	}

	if err := u.jobs.Delete(ctx, id, ownerID); err != nil {
		return mapJobWriteError(err)
	}

	u.invalidateSearch(ctx)
	return nil
}

func (u *Jobs) normalize(in JobInput) (JobInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	if in.Title == "" || in.CompanyName == "" {
		return JobInput{}, ErrInvalidInput
	}
	if !validJobType(in.JobType) {
		return JobInput{}, ErrInvalidInput
	}
	if !location.ValidTriple(in.LocationCountry, in.LocationState, in.LocationCity) {
		return JobInput{}, ErrInvalidInput
	}

	if u.sanitizer != nil {
		in.Description = u.sanitizer.Clean(in.Description)
	}
	return in, nil
}

func (u *Jobs) invalidateSearch(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "jobs:search:*"); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] cache invalidation failed: %v", err)
	}
}

func validJobType(t string) bool {
	for _, jt := range JobTypes {
		if t == jt {
			return true
		}
	}
	return false
}

func mapJobWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrNotOwner):
		return ErrForbidden
	default:
		return ErrInternal
	}
}
