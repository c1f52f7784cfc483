package store

import (
	"context"
	"errors"

	"github.com/abubakkersiddiqq/taskflow/internal/model"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (per-owner project name, user email).
var ErrDuplicate = errors.New("duplicate")

// TaskFilter controls optional equality filters for task queries. Nil fields
// impose no constraint; set fields are ANDed together.
type TaskFilter struct {
	Status   *string
	Priority *string
	Project  *string
}

// Store defines the persistence interface for users, projects, and tasks.
// All project and task operations are scoped to a single owner; the store
// never returns or mutates rows belonging to another owner.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) error
	UpdateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) error
	UpdateProject(ctx context.Context, project model.Project) error
	GetProjectByID(ctx context.Context, ownerID, id string) (*model.Project, error)
	GetProjectByName(ctx context.Context, ownerID, name string) (*model.Project, error)
	GetProjects(ctx context.Context, ownerID string) ([]model.Project, error)

	// DeleteProjectReassignTasks deletes the project row and, in the same
	// transaction, moves every task of the same owner whose project field
	// equals name into the fallback bucket. The reassignment runs before
	// the delete so a partial failure never leaves tasks pointing at a
	// vanished project without reassignment.
	DeleteProjectReassignTasks(ctx context.Context, ownerID, id, name, fallback string) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
	GetTaskByID(ctx context.Context, ownerID, id string) (*model.Task, error)
	GetTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]model.Task, error)
}
