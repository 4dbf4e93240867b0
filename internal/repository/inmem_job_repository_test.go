package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedJob(owner uuid.UUID, age time.Duration, description, jobType, country, state string) Job {
	return Job{
		ID:              uuid.New(),
		OwnerID:         owner,
		CreatedAt:       time.Now().UTC().Add(-age),
		Title:           "Job",
		CompanyName:     "Acme",
		Description:     description,
		LocationCountry: country,
		LocationState:   state,
		JobType:         jobType,
	}
}

func TestInMemorySearch_TermIsCaseInsensitiveSubstring(t *testing.T) {
	owner := uuid.New()
	repo := NewInMemoryJobRepository(
		seedJob(owner, time.Minute, "Senior Go Engineer", "Full-Time", "US", "CA"),
		seedJob(owner, 2*time.Minute, "Data Analyst", "Full-Time", "US", "CA"),
	)

	rows, total, err := repo.Search(context.Background(), JobSearchFilter{Term: "gO eNgIn", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected one substring match, got %d/%d", len(rows), total)
	}
	if rows[0].Description != "Senior Go Engineer" {
		t.Fatalf("matched the wrong row: %q", rows[0].Description)
	}
}

func TestInMemorySearch_MetacharactersAreLiteral(t *testing.T) {
	owner := uuid.New()
	repo := NewInMemoryJobRepository(
		seedJob(owner, time.Minute, "100% remote", "Full-Time", "US", "CA"),
		seedJob(owner, 2*time.Minute, "fully remote", "Full-Time", "US", "CA"),
	)

	rows, total, err := repo.Search(context.Background(), JobSearchFilter{Term: "100% r", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Description != "100% remote" {
		t.Fatalf("%% must match itself, not anything: got %d rows", total)
	}

	_, total, err = repo.Search(context.Background(), JobSearchFilter{Term: "100_ r", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("_ must not act as a single-character wildcard, got %d matches", total)
	}
}

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		if got := likeEscaper.Replace(tt.in); got != tt.want {
			t.Fatalf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInMemorySearch_ExactFiltersAndOwner(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	repo := NewInMemoryJobRepository(
		seedJob(alice, time.Minute, "a", "Full-Time", "US", "CA"),
		seedJob(alice, 2*time.Minute, "b", "Contract", "US", "NY"),
		seedJob(bob, 3*time.Minute, "c", "Full-Time", "CA", "ON"),
	)

	tests := []struct {
		name   string
		filter JobSearchFilter
		want   int
	}{
		{"job type", JobSearchFilter{JobType: "Full-Time", Page: 1, PageSize: 10}, 2},
		{"country", JobSearchFilter{Country: "US", Page: 1, PageSize: 10}, 2},
		{"country and state", JobSearchFilter{Country: "US", State: "NY", Page: 1, PageSize: 10}, 1},
		{"owner", JobSearchFilter{OwnerID: &alice, Page: 1, PageSize: 10}, 2},
		{"owner and type", JobSearchFilter{OwnerID: &bob, JobType: "Full-Time", Page: 1, PageSize: 10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := repo.Search(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if total != tt.want {
				t.Fatalf("expected %d matches, got %d", tt.want, total)
			}
		})
	}
}

func TestInMemorySearch_OrderingNewestFirst(t *testing.T) {
	owner := uuid.New()
	oldest := seedJob(owner, 3*time.Hour, "oldest", "Full-Time", "US", "CA")
	middle := seedJob(owner, 2*time.Hour, "middle", "Full-Time", "US", "CA")
	newest := seedJob(owner, time.Hour, "newest", "Full-Time", "US", "CA")
	repo := NewInMemoryJobRepository(oldest, newest, middle)

	rows, _, err := repo.Search(context.Background(), JobSearchFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	got := []string{rows[0].Description, rows[1].Description, rows[2].Description}
	want := []string{"newest", "middle", "oldest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrong order: got %v, want %v", got, want)
		}
	}
}

func TestInMemorySearch_TieBreakOnID(t *testing.T) {
	owner := uuid.New()
	at := time.Now().UTC().Add(-time.Hour)
	a := seedJob(owner, 0, "a", "Full-Time", "US", "CA")
	b := seedJob(owner, 0, "b", "Full-Time", "US", "CA")
	a.CreatedAt, b.CreatedAt = at, at
	repo := NewInMemoryJobRepository(b, a)

	rows, _, err := repo.Search(context.Background(), JobSearchFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rows[0].ID.String() > rows[1].ID.String() {
		t.Fatalf("equal timestamps must order by id ascending")
	}
}

func TestInMemorySearch_PaginationClamps(t *testing.T) {
	owner := uuid.New()
	var jobs []Job
	for i := 0; i < 7; i++ {
		jobs = append(jobs, seedJob(owner, time.Duration(i)*time.Minute, "row", "Full-Time", "US", "CA"))
	}
	repo := NewInMemoryJobRepository(jobs...)

	rows, total, err := repo.Search(context.Background(), JobSearchFilter{Page: 2, PageSize: 5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 7 || len(rows) != 2 {
		t.Fatalf("expected 2 rows on the short last page, got %d/%d", len(rows), total)
	}

	rows, total, err = repo.Search(context.Background(), JobSearchFilter{Page: 9, PageSize: 5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 7 || len(rows) != 0 {
		t.Fatalf("past-the-end page must be empty with the true total, got %d/%d", len(rows), total)
	}
}

func TestInMemoryWrite_OwnershipEnforced(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	job := seedJob(alice, time.Minute, "row", "Full-Time", "US", "CA")
	repo := NewInMemoryJobRepository(job)

	stolen := job
	stolen.OwnerID = bob
	if err := repo.Update(context.Background(), stolen); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on foreign update, got %v", err)
	}
	if err := repo.Delete(context.Background(), job.ID, bob); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on foreign delete, got %v", err)
	}

	missing := job
	missing.ID = uuid.New()
	if err := repo.Update(context.Background(), missing); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), uuid.New(), alice); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestInMemoryUpdate_PreservesCreatedAt(t *testing.T) {
	owner := uuid.New()
	job := seedJob(owner, time.Hour, "before", "Full-Time", "US", "CA")
	repo := NewInMemoryJobRepository(job)

	updated := job
	updated.Description = "after"
	updated.CreatedAt = time.Now().UTC()
	if err := repo.Update(context.Background(), updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Description != "after" {
		t.Fatalf("update did not apply")
	}
	if !got.CreatedAt.Equal(job.CreatedAt) {
		t.Fatalf("update must not move the creation timestamp")
	}
}
