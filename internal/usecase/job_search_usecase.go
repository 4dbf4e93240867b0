package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"job-board/internal/repository"

	"github.com/google/uuid"
)

// SearchParams is the filter snapshot the executor receives. Empty strings
// mean "any"; a nil OwnerID means no owner constraint.
type SearchParams struct {
	Term     string
	JobType  string
	Country  string
	State    string
	OwnerID  *uuid.UUID
	PageSize int
	Page     int
}

// ResultPage carries one page of matches and the scalar total over the full
// matching set, as a single structured pair.
type ResultPage struct {
	Rows       []repository.Job `json:"rows"`
	TotalCount int              `json:"total_count"`
}

func (p ResultPage) TotalPages(pageSize int) int {
	if pageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	return (p.TotalCount + pageSize - 1) / pageSize
}

type JobSearchUsecase interface {
	Search(ctx context.Context, params SearchParams) (ResultPage, error)
}

type JobSearch struct {
	jobs   repository.JobRepository
	cache  SearchCache
	logger *log.Logger
}

func NewJobSearchUsecase(jobs repository.JobRepository, cache SearchCache, logger *log.Logger) *JobSearch {
	return &JobSearch{jobs: jobs, cache: cache, logger: logger}
}

// Search returns one page of listings matching the snapshot plus the total
// match count, in a single atomic read. Matching is case-insensitive
// substring over the description; the remaining filters are exact. A page
// past the end is not an error: it yields empty rows with the true count.
func (u *JobSearch) Search(ctx context.Context, params SearchParams) (ResultPage, error) {
	if params.Page < 1 || params.PageSize < 1 {
		return ResultPage{}, ErrInvalidInput
	}

	params.Term = strings.TrimSpace(params.Term)
	if params.Country == "" {
		// A state filter without a country is meaningless.
		params.State = ""
	}

	cacheKey := SearchCacheKey(params)
	lockKey := SearchLockKey(cacheKey)

	if u.cache != nil {
		var cached ResultPage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Search] Cache HIT: %s", cacheKey)
			}
			return cached, nil
		}
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			// Someone else is filling this key; give them a moment.
			time.Sleep(200 * time.Millisecond)
			var cached ResultPage
			hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err2 == nil && hit {
				return cached, nil
			}
		}
	}

	filter := repository.JobSearchFilter{
		Term:     params.Term,
		JobType:  params.JobType,
		Country:  params.Country,
		State:    params.State,
		OwnerID:  params.OwnerID,
		PageSize: params.PageSize,
		Page:     params.Page,
	}

	rows, total, err := u.jobs.Search(ctx, filter)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Search] query failed: %v", err)
		}
		return ResultPage{}, ErrInternal
	}

	page := ResultPage{Rows: rows, TotalCount: total}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, page, 0)
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return page, nil
}
