// Package collection holds the client-side task collection state: the
// current page of tasks, the active filter/sort/page specs and the at most
// one task under edit. All remote calls go through the repository boundary;
// state changes happen only after a call has resolved.
package collection

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/diasKarataev/todo-client/domain"
	"github.com/diasKarataev/todo-client/repository"
)

const defaultPageSize = 5

// Controller reconciles local list state with the remote task resource.
type Controller struct {
	repo    repository.TaskRepository
	session *domain.Session
	logger  *zap.Logger

	mu     sync.Mutex
	tasks  []domain.Task
	total  int
	page   repository.PageSpec
	filter repository.FilterSpec
	sort   repository.SortSpec
	edit   *editState

	// Tags for the list slot. Overlapping loads can resolve out of issue
	// order; a response is applied only when no later-issued one already has.
	listSeq     uint64
	listApplied uint64
}

func New(repo repository.TaskRepository, session *domain.Session, pageSize int, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Controller{
		repo:    repo,
		session: session,
		logger:  logger,
		page:    repository.PageSpec{Number: 1, Size: pageSize},
	}
}

// Load fetches the current page and replaces the local list wholesale with
// the server's ordered answer. On failure the list and total are left
// untouched. A response that lost the race to a later-issued load is
// discarded silently.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	q := repository.TaskQuery{Page: c.page, Filter: c.filter, Sort: c.sort}
	c.mu.Unlock()

	tasks, total, err := c.repo.List(ctx, q)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.listApplied {
		c.logger.Debug("discarding stale list response")
		return nil
	}
	c.listApplied = seq
	c.tasks = tasks
	c.total = total
	return nil
}

// SetFilters replaces the filter spec without refetching. The change takes
// effect on the next ApplyFilters, page move or Load.
func (c *Controller) SetFilters(f repository.FilterSpec) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// SetSort replaces the sort spec without refetching.
func (c *Controller) SetSort(s repository.SortSpec) {
	c.mu.Lock()
	c.sort = s
	c.mu.Unlock()
}

// ApplyFilters refetches with the current specs. Filter edits stay local
// until this is called, so typing into filter fields never storms the
// server.
func (c *Controller) ApplyFilters(ctx context.Context) error {
	return c.Load(ctx)
}

// SetPage moves to page n and refetches. Out-of-range targets, including
// anything past the last page implied by the server-reported total, are a
// no-op: no state change and no request.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || n > c.lastPageLocked() || n == c.page.Number {
		c.mu.Unlock()
		return nil
	}
	c.page.Number = n
	c.mu.Unlock()
	return c.Load(ctx)
}

// Create submits a new task. It requires an activated account and refuses
// locally otherwise; the server-returned task, carrying the assigned id and
// timestamps, is appended to the current page. The total stays as last
// reported and self-corrects on the next Load.
func (c *Controller) Create(ctx context.Context, name, details string) (*domain.Task, error) {
	if !c.session.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !c.session.IsActivated() {
		return nil, domain.ErrNotActivated
	}

	created, err := c.repo.Create(ctx, name, details)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, *created)
	c.mu.Unlock()
	return created, nil
}

// Delete removes a task. The local entry goes away only after the server
// confirmed the delete; a failed call leaves the page exactly as it was. If
// the deleted task was under edit, the edit is cancelled implicitly.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	if c.edit != nil && c.edit.task.ID == id {
		c.edit = nil
	}
	return nil
}

// ToggleStar flips a task's star on the server and applies exactly the
// returned flag and timestamp. The client never flips locally: under
// concurrent toggles the server's answer is the only truth. A response for a
// task no longer on the page is a no-op.
func (c *Controller) ToggleStar(ctx context.Context, id string) (repository.StarResult, error) {
	res, err := c.repo.ToggleStar(ctx, id)
	if err != nil {
		return repository.StarResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Star = res.Starred
			c.tasks[i].LastUpdated = res.LastUpdated
			break
		}
	}
	return res, nil
}

// Tasks returns a copy of the current page in server order.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Task(nil), c.tasks...)
}

// Total returns the server-reported count across all pages.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.Number
}

func (c *Controller) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.Size
}

// LastPage returns the highest valid page number for the known total.
func (c *Controller) LastPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPageLocked()
}

func (c *Controller) Filter() repository.FilterSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) Sort() repository.SortSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

func (c *Controller) lastPageLocked() int {
	if c.total <= 0 || c.page.Size <= 0 {
		return 1
	}
	last := (c.total + c.page.Size - 1) / c.page.Size
	if last < 1 {
		last = 1
	}
	return last
}
