package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// InMemoryJobRepository implements JobRepository over a slice. It is the
// executable statement of the search semantics the Postgres implementation
// mirrors in SQL, and the substrate for usecase and controller tests.
type InMemoryJobRepository struct {
	mu   sync.RWMutex
	jobs []Job
}

func NewInMemoryJobRepository(seed ...Job) *InMemoryJobRepository {
	r := &InMemoryJobRepository{}
	r.jobs = append(r.jobs, seed...)
	return r
}

func (r *InMemoryJobRepository) Search(_ context.Context, f JobSearchFilter) ([]Job, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]Job, 0)
	for _, j := range r.jobs {
		if matchesFilter(j, f) {
			matches = append(matches, j)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if !matches[a].CreatedAt.Equal(matches[b].CreatedAt) {
			return matches[a].CreatedAt.After(matches[b].CreatedAt)
		}
		return matches[a].ID.String() < matches[b].ID.String()
	})

	total := len(matches)
	start := f.Offset()
	if start >= total {
		return []Job{}, total, nil
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}

	page := make([]Job, end-start)
	copy(page, matches[start:end])
	return page, total, nil
}

func matchesFilter(j Job, f JobSearchFilter) bool {
	if f.Term != "" && !strings.Contains(strings.ToLower(j.Description), strings.ToLower(f.Term)) {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.Country != "" && j.LocationCountry != f.Country {
		return false
	}
	if f.State != "" && j.LocationState != f.State {
		return false
	}
	if f.OwnerID != nil && j.OwnerID != *f.OwnerID {
		return false
	}
	return true
}

func (r *InMemoryJobRepository) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, ErrJobNotFound
}

func (r *InMemoryJobRepository) Create(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, job)
	return nil
}

func (r *InMemoryJobRepository) Update(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, j := range r.jobs {
		if j.ID != job.ID {
			continue
		}
		if j.OwnerID != job.OwnerID {
			return ErrNotOwner
		}
		job.CreatedAt = j.CreatedAt
		r.jobs[i] = job
		return nil
	}
	return ErrJobNotFound
}

func (r *InMemoryJobRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, j := range r.jobs {
		if j.ID != id {
			continue
		}
		if j.OwnerID != ownerID {
			return ErrNotOwner
		}
		r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
		return nil
	}
	return ErrJobNotFound
}

func (r *InMemoryJobRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
