// Package browse owns the filter state behind a listing view: debounced text
// search, cascading location selectors, page-reset coordination, and the
// discipline that keeps overlapping query responses from rendering stale
// results.
package browse

import (
	"context"
	"sync"
	"time"

	"job-board/internal/location"
	"job-board/internal/repository"
	"job-board/internal/usecase"

	"github.com/google/uuid"
)

type Mode string

const (
	ModePublic    Mode = "public"
	ModeDashboard Mode = "dashboard"
)

// FilterState is the complete set of current filter field values. Page is
// 1-based. City is not a browse filter; it only exists on the form side.
type FilterState struct {
	Term    string
	JobType string
	Country string
	State   string
	Page    int
	Mode    Mode
}

// Searcher is the query operation the controller drives.
type Searcher interface {
	Search(ctx context.Context, params usecase.SearchParams) (usecase.ResultPage, error)
}

// Identity resolves the current principal. resolved=false means the identity
// is not yet available, which is not an error.
type Identity interface {
	CurrentUserID(ctx context.Context) (id uuid.UUID, resolved bool, err error)
}

// Deleter removes a listing on behalf of the principal.
type Deleter interface {
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// Renderer receives view-state transitions. Loading always resolves to
// either a page or an error; prior rows stay on screen through RenderError.
type Renderer interface {
	RenderLoading()
	RenderPage(state FilterState, page usecase.ResultPage)
	RenderError(err error)
}

type Config struct {
	Mode         Mode
	PageSize     int
	Debounce     time.Duration
	QueryTimeout time.Duration
}

type Controller struct {
	searcher Searcher
	identity Identity
	deleter  Deleter
	renderer Renderer

	pageSize int
	debounce time.Duration
	timeout  time.Duration

	mu          sync.Mutex
	state       FilterState
	pendingTerm string
	termGen     uint64
	timer       *time.Timer
	seq         uint64
	closed      bool

	// renderMu serializes the staleness check with the render call itself.
	// Without it a response could pass the check, lose the CPU, and paint
	// over a newer response that rendered in between. Never acquired while
	// holding mu.
	renderMu sync.Mutex
}

func NewController(cfg Config, searcher Searcher, identity Identity, deleter Deleter, renderer Renderer) *Controller {
	if cfg.Mode == "" {
		cfg.Mode = ModePublic
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 10 * time.Second
	}

	return &Controller{
		searcher: searcher,
		identity: identity,
		deleter:  deleter,
		renderer: renderer,
		pageSize: cfg.PageSize,
		debounce: cfg.Debounce,
		timeout:  cfg.QueryTimeout,
		state:    FilterState{Page: 1, Mode: cfg.Mode},
	}
}

// Start issues the initial query for the empty filter snapshot.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueQuery()
}

// Close stops the debounce timer. In-flight responses are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) State() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTerm records a keystroke. Each call restarts the debounce timer; the
// term only becomes effective when the timer elapses uninterrupted.
func (c *Controller) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingTerm = term
	c.termGen++
	gen := c.termGen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.commitTerm(gen) })
}

// commitTerm is the debounce timer body. Stop on a timer that has already
// fired returns false, so a superseded fire can still reach here; the
// generation check makes it a no-op.
func (c *Controller) commitTerm(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.termGen {
		return
	}
	if c.pendingTerm == c.state.Term {
		return
	}
	c.state.Term = c.pendingTerm
	c.state.Page = 1
	c.issueQuery()
}

// SetJobType takes effect immediately.
func (c *Controller) SetJobType(jobType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.JobType == jobType {
		return
	}
	c.state.JobType = jobType
	c.state.Page = 1
	c.issueQuery()
}

// SetCountry takes effect immediately and clears the dependent state
// selection.
func (c *Controller) SetCountry(country string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Country == country {
		return
	}
	c.state.Country = country
	c.state.State = ""
	c.state.Page = 1
	c.issueQuery()
}

func (c *Controller) SetState(state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.State == state {
		return
	}
	c.state.State = state
	c.state.Page = 1
	c.issueQuery()
}

// SetPage navigates without resetting filters.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || page < 1 || page == c.state.Page {
		return
	}
	c.state.Page = page
	c.issueQuery()
}

// CountryOptions and StateOptions are the derived option lists for the
// cascading selectors.
func (c *Controller) CountryOptions() []location.Country {
	return location.Countries()
}

func (c *Controller) StateOptions() []location.State {
	c.mu.Lock()
	country := c.state.Country
	c.mu.Unlock()
	if country == "" {
		return nil
	}
	return location.StatesOf(country)
}

// Delete removes a listing and, on success, re-queries the current snapshot.
// Total count and page boundaries may have shifted, so local row removal is
// not enough.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	ownerID, resolved, err := c.identity.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	if !resolved {
		return usecase.ErrUnauthorized
	}

	if err := c.deleter.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.issueQuery()
	}
	return nil
}

// issueQuery snapshots the state, bumps the sequence number, and runs the
// round trip off the caller's goroutine. Callers hold c.mu.
func (c *Controller) issueQuery() {
	c.seq++
	seq := c.seq
	snap := c.state

	if c.renderer != nil {
		c.renderer.RenderLoading()
	}
	go c.runQuery(seq, snap)
}

func (c *Controller) runQuery(seq uint64, snap FilterState) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var owner *uuid.UUID
	if snap.Mode == ModeDashboard {
		id, resolved, err := c.identity.CurrentUserID(ctx)
		if err != nil {
			c.applyError(seq, err)
			return
		}
		if !resolved {
			// An unscoped dashboard query must never reach the store.
			// Settle on an empty, non-loading result instead.
			c.applyPage(seq, snap, usecase.ResultPage{Rows: []repository.Job{}})
			return
		}
		owner = &id
	}

	page, err := c.searcher.Search(ctx, usecase.SearchParams{
		Term:     snap.Term,
		JobType:  snap.JobType,
		Country:  snap.Country,
		State:    snap.State,
		OwnerID:  owner,
		PageSize: c.pageSize,
		Page:     snap.Page,
	})
	if err != nil {
		c.applyError(seq, err)
		return
	}
	c.applyPage(seq, snap, page)
}

// applyPage renders a response unless a newer query has been issued since.
// Last state wins: renderMu is held across both the check and the render,
// so responses resolve to the screen in the order they pass the check.
func (c *Controller) applyPage(seq uint64, snap FilterState, page usecase.ResultPage) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return
	}

	// The snapshot's page may no longer exist, e.g. after deleting the only
	// row on the last page. Step back to the real last page and re-query.
	if len(page.Rows) == 0 && page.TotalCount > 0 && snap.Page > 1 {
		last := page.TotalPages(c.pageSize)
		if last >= 1 && last < snap.Page {
			c.state.Page = last
			c.issueQuery()
			c.mu.Unlock()
			return
		}
	}

	r := c.renderer
	c.mu.Unlock()
	if r != nil {
		r.RenderPage(snap, page)
	}
}

func (c *Controller) applyError(seq uint64, err error) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return
	}
	r := c.renderer
	c.mu.Unlock()
	if r != nil {
		r.RenderError(err)
	}
}
