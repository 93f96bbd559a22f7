package repository

import (
	"context"
	"time"

	"github.com/diasKarataev/todo-client/domain"
)

// SortField names a server-side ordering column. The zero value disables
// server-side ordering and leaves the server's default order in effect.
type SortField string

const (
	SortNone      SortField = ""
	SortByName    SortField = "name"
	SortByDetails SortField = "details"
	SortByUpdated SortField = "lastUpdated"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// PageSpec selects one page of the collection. Number starts at 1.
type PageSpec struct {
	Number int
	Size   int
}

// FilterSpec narrows the listed collection. Zero values mean "no constraint".
type FilterSpec struct {
	Name    string
	Details string
	Starred bool
}

type SortSpec struct {
	Field SortField
	Order SortOrder
}

// TaskQuery is the full parameter set for one list request: the three
// independent axes composed into one query.
type TaskQuery struct {
	Page   PageSpec
	Filter FilterSpec
	Sort   SortSpec
}

// StarResult carries the authoritative outcome of a star toggle. The server,
// not the client, decides the new flag so that concurrent toggles from other
// clients cannot be lost.
type StarResult struct {
	Starred     bool
	LastUpdated time.Time
}

// TaskRepository is the remote task resource. List reports the collection
// page in server order together with the total count across all pages.
type TaskRepository interface {
	List(ctx context.Context, q TaskQuery) ([]domain.Task, int, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, name, details string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleStar(ctx context.Context, id string) (StarResult, error)
}
