package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"job-board/internal/repository"

	"github.com/google/uuid"
)

type countingJobRepo struct {
	inner       repository.JobRepository
	mu          sync.Mutex
	searchCalls int
	err         error
}

func (r *countingJobRepo) Search(ctx context.Context, f repository.JobSearchFilter) ([]repository.Job, int, error) {
	r.mu.Lock()
	r.searchCalls++
	r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.inner.Search(ctx, f)
}

func (r *countingJobRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *countingJobRepo) Create(ctx context.Context, j repository.Job) error {
	return r.inner.Create(ctx, j)
}

func (r *countingJobRepo) Update(ctx context.Context, j repository.Job) error {
	return r.inner.Update(ctx, j)
}

func (r *countingJobRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.inner.Delete(ctx, id, ownerID)
}

type memCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	patterns []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = []byte(value)
	return true, nil
}

func seedJob(owner uuid.UUID, created time.Time, description, jobType, country, state string) repository.Job {
	return repository.Job{
		ID:              uuid.New(),
		OwnerID:         owner,
		CreatedAt:       created,
		Title:           "Job",
		CompanyName:     "Acme",
		Description:     description,
		LocationCountry: country,
		LocationState:   state,
		JobType:         jobType,
	}
}

func TestJobSearch_InvalidInput(t *testing.T) {
	uc := NewJobSearchUsecase(repository.NewInMemoryJobRepository(), nil, nil)

	cases := []struct {
		name string
		p    SearchParams
	}{
		{"zero page", SearchParams{PageSize: 10, Page: 0}},
		{"negative page", SearchParams{PageSize: 10, Page: -1}},
		{"zero page size", SearchParams{PageSize: 0, Page: 1}},
		{"negative page size", SearchParams{PageSize: -5, Page: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Search(context.Background(), tc.p)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestJobSearch_PageSlicing(t *testing.T) {
	owner := uuid.New()
	base := time.Now().UTC()
	repo := repository.NewInMemoryJobRepository()
	for i := 0; i < 25; i++ {
		_ = repo.Create(context.Background(), seedJob(owner, base.Add(-time.Duration(i)*time.Minute), "engineer role", "Full-Time", "US", "CA"))
	}
	uc := NewJobSearchUsecase(repo, nil, nil)

	page, err := uc.Search(context.Background(), SearchParams{PageSize: 10, Page: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Rows) != 5 {
		t.Fatalf("expected 5 rows on page 3, got %d", len(page.Rows))
	}
	if page.TotalCount != 25 {
		t.Fatalf("expected total 25, got %d", page.TotalCount)
	}
	if page.TotalPages(10) != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages(10))
	}
}

func TestJobSearch_NoMatches(t *testing.T) {
	repo := repository.NewInMemoryJobRepository(
		seedJob(uuid.New(), time.Now(), "designer wanted", "Full-Time", "US", "CA"),
	)
	uc := NewJobSearchUsecase(repo, nil, nil)

	page, err := uc.Search(context.Background(), SearchParams{Term: "engineer", PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Rows) != 0 || page.TotalCount != 0 {
		t.Fatalf("expected empty result, got %d rows total %d", len(page.Rows), page.TotalCount)
	}
}

func TestJobSearch_PageBeyondLast(t *testing.T) {
	owner := uuid.New()
	repo := repository.NewInMemoryJobRepository()
	for i := 0; i < 7; i++ {
		_ = repo.Create(context.Background(), seedJob(owner, time.Now().Add(-time.Duration(i)*time.Hour), "go developer", "Contract", "DE", "BE"))
	}
	uc := NewJobSearchUsecase(repo, nil, nil)

	page, err := uc.Search(context.Background(), SearchParams{PageSize: 5, Page: 9})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Rows) != 0 {
		t.Fatalf("expected empty rows past the last page, got %d", len(page.Rows))
	}
	if page.TotalCount != 7 {
		t.Fatalf("expected total 7, got %d", page.TotalCount)
	}
}

func TestJobSearch_StateWithoutCountryIgnored(t *testing.T) {
	repo := repository.NewInMemoryJobRepository(
		seedJob(uuid.New(), time.Now(), "backend", "Full-Time", "US", "CA"),
		seedJob(uuid.New(), time.Now(), "backend", "Full-Time", "CA", "ON"),
	)
	uc := NewJobSearchUsecase(repo, nil, nil)

	page, err := uc.Search(context.Background(), SearchParams{State: "CA", PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("state filter without country must be ignored, got total %d", page.TotalCount)
	}
}

func TestJobSearch_SumOfPagesEqualsTotal(t *testing.T) {
	owner := uuid.New()
	repo := repository.NewInMemoryJobRepository()
	for i := 0; i < 23; i++ {
		_ = repo.Create(context.Background(), seedJob(owner, time.Now().Add(-time.Duration(i)*time.Minute), "platform engineer", "Part-Time", "GB", "ENG"))
	}
	uc := NewJobSearchUsecase(repo, nil, nil)

	const pageSize = 10
	seen := 0
	total := -1
	for p := 1; ; p++ {
		page, err := uc.Search(context.Background(), SearchParams{PageSize: pageSize, Page: p})
		if err != nil {
			t.Fatalf("page %d: %v", p, err)
		}
		if total == -1 {
			total = page.TotalCount
		} else if page.TotalCount != total {
			t.Fatalf("total changed between pages: %d vs %d", total, page.TotalCount)
		}
		if len(page.Rows) == 0 {
			break
		}
		if p == page.TotalPages(pageSize) {
			if len(page.Rows) < 1 || len(page.Rows) > pageSize {
				t.Fatalf("last page has %d rows", len(page.Rows))
			}
		}
		seen += len(page.Rows)
	}
	if seen != total {
		t.Fatalf("sum of pages %d != total %d", seen, total)
	}
}

func TestJobSearch_MonotonicNarrowing(t *testing.T) {
	owner := uuid.New()
	repo := repository.NewInMemoryJobRepository(
		seedJob(owner, time.Now(), "senior engineer", "Full-Time", "US", "CA"),
		seedJob(owner, time.Now(), "junior engineer", "Contract", "US", "NY"),
		seedJob(owner, time.Now(), "designer", "Full-Time", "CA", "ON"),
	)
	uc := NewJobSearchUsecase(repo, nil, nil)

	broad, err := uc.Search(context.Background(), SearchParams{PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	narrower := []SearchParams{
		{Term: "engineer", PageSize: 10, Page: 1},
		{JobType: "Full-Time", PageSize: 10, Page: 1},
		{Country: "US", PageSize: 10, Page: 1},
		{Country: "US", State: "CA", PageSize: 10, Page: 1},
	}
	for _, p := range narrower {
		page, err := uc.Search(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if page.TotalCount > broad.TotalCount {
			t.Fatalf("constraint increased total: %d > %d", page.TotalCount, broad.TotalCount)
		}
	}
}

func TestJobSearch_Idempotent(t *testing.T) {
	owner := uuid.New()
	repo := repository.NewInMemoryJobRepository()
	for i := 0; i < 5; i++ {
		_ = repo.Create(context.Background(), seedJob(owner, time.Now().Add(-time.Duration(i)*time.Second), fmt.Sprintf("engineer %d", i), "Full-Time", "US", "CA"))
	}
	uc := NewJobSearchUsecase(repo, nil, nil)

	p := SearchParams{Term: "engineer", PageSize: 3, Page: 1}
	first, err := uc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if first.TotalCount != second.TotalCount || len(first.Rows) != len(second.Rows) {
		t.Fatalf("repeated query differs: %+v vs %+v", first, second)
	}
	for i := range first.Rows {
		if first.Rows[i].ID != second.Rows[i].ID {
			t.Fatalf("row %d differs between identical queries", i)
		}
	}
}

func TestJobSearch_DashboardIsolation(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	repo := repository.NewInMemoryJobRepository(
		seedJob(alice, time.Now(), "a1", "Full-Time", "US", "CA"),
		seedJob(alice, time.Now(), "a2", "Contract", "US", "NY"),
		seedJob(bob, time.Now(), "b1", "Full-Time", "CA", "ON"),
	)
	uc := NewJobSearchUsecase(repo, nil, nil)

	mine, err := uc.Search(context.Background(), SearchParams{OwnerID: &alice, PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if mine.TotalCount != 2 {
		t.Fatalf("expected 2 owned rows, got %d", mine.TotalCount)
	}
	for _, r := range mine.Rows {
		if r.OwnerID != alice {
			t.Fatalf("dashboard result leaked row owned by %s", r.OwnerID)
		}
	}

	public, err := uc.Search(context.Background(), SearchParams{PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if public.TotalCount != 3 {
		t.Fatalf("public mode should see all rows, got %d", public.TotalCount)
	}
}

func TestJobSearch_Ordering(t *testing.T) {
	owner := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := seedJob(owner, base.Add(-time.Hour), "engineer", "Full-Time", "US", "CA")
	newer := seedJob(owner, base, "engineer", "Full-Time", "US", "CA")
	tieA := seedJob(owner, base.Add(-2*time.Hour), "engineer", "Full-Time", "US", "CA")
	tieB := seedJob(owner, base.Add(-2*time.Hour), "engineer", "Full-Time", "US", "CA")

	repo := repository.NewInMemoryJobRepository(older, newer, tieA, tieB)
	uc := NewJobSearchUsecase(repo, nil, nil)

	page, err := uc.Search(context.Background(), SearchParams{PageSize: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(page.Rows))
	}
	if page.Rows[0].ID != newer.ID || page.Rows[1].ID != older.ID {
		t.Fatalf("rows not in creation-time-descending order")
	}
	if page.Rows[2].ID.String() > page.Rows[3].ID.String() {
		t.Fatalf("tie not broken by ascending id")
	}
}

func TestJobSearch_CacheHitSkipsRepository(t *testing.T) {
	owner := uuid.New()
	counting := &countingJobRepo{inner: repository.NewInMemoryJobRepository(
		seedJob(owner, time.Now(), "cached engineer", "Full-Time", "US", "CA"),
	)}
	c := newMemCache()
	uc := NewJobSearchUsecase(counting, c, nil)

	p := SearchParams{Term: "cached", PageSize: 10, Page: 1}
	if _, err := uc.Search(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Search(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	counting.mu.Lock()
	calls := counting.searchCalls
	counting.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 repository call with warm cache, got %d", calls)
	}
}

func TestJobSearch_RepositoryError(t *testing.T) {
	counting := &countingJobRepo{inner: repository.NewInMemoryJobRepository(), err: errors.New("boom")}
	uc := NewJobSearchUsecase(counting, nil, nil)

	_, err := uc.Search(context.Background(), SearchParams{PageSize: 10, Page: 1})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
