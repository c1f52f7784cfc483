// Package engine holds the consistency rules between projects and tasks:
// per-owner project name uniqueness, the delete cascade that moves orphaned
// tasks into the "General" bucket, and partial task updates. Tasks reference
// projects by name, not by id; the reference is deliberately soft and every
// mutation path that touches project identity goes through this package.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abubakkersiddiqq/taskflow/internal/model"
	"github.com/abubakkersiddiqq/taskflow/internal/store"
)

// Engine applies the business rules over a passive store. All operations are
// scoped to the calling owner; cross-owner access surfaces as NotFoundError.
type Engine struct {
	store  store.Store
	logger *slog.Logger
}

// New creates an Engine over the given store. A nil logger falls back to the
// default slog logger.
func New(s store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: s, logger: logger}
}

// ProjectUpdate is a partial project patch. Nil fields are left unchanged.
type ProjectUpdate struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// TaskDraft carries the caller-supplied fields for a new task. Status and
// priority default when empty; Project is accepted as-is without checking it
// against existing project names.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Project     string     `json:"project"`
	Due         *time.Time `json:"due"`
}

// TaskUpdate is a partial task patch. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Project     *string    `json:"project"`
	Due         *time.Time `json:"due"`
}

// ListProjects returns the owner's projects, oldest first.
func (e *Engine) ListProjects(ctx context.Context, ownerID string) ([]model.Project, error) {
	projects, err := e.store.GetProjects(ctx, ownerID)
	if err != nil {
		return nil, e.storeErr("listing projects", err)
	}
	return projects, nil
}

// CreateProject validates and persists a new project for the owner. The name
// is trimmed; an empty result is rejected and a name the owner already holds
// is a conflict.
func (e *Engine) CreateProject(ctx context.Context, ownerID, name, color string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newFieldError("name", "Project name is required")
	}
	if color == "" {
		color = model.DefaultProjectColor
	}

	if _, err := e.store.GetProjectByName(ctx, ownerID, name); err == nil {
		return nil, &ConflictError{Message: "Project already exists"}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, e.storeErr("checking project name", err)
	}

	project := model.Project{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := e.store.CreateProject(ctx, project); err != nil {
		// Lost a race with a concurrent create of the same name.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &ConflictError{Message: "Project already exists"}
		}
		return nil, e.storeErr("creating project", err)
	}

	return &project, nil
}

// UpdateProject renames and/or recolors one of the owner's projects.
// Renames re-check per-owner uniqueness. Renaming does NOT rewrite the
// project field of tasks that reference the old name; they keep pointing at
// it (soft reference semantics).
func (e *Engine) UpdateProject(ctx context.Context, ownerID, id string, upd ProjectUpdate) (*model.Project, error) {
	project, err := e.store.GetProjectByID(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Project"}
	}
	if err != nil {
		return nil, e.storeErr("getting project", err)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, newFieldError("name", "Project name is required")
		}
		if name != project.Name {
			if _, err := e.store.GetProjectByName(ctx, ownerID, name); err == nil {
				return nil, &ConflictError{Message: "Project already exists"}
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, e.storeErr("checking project name", err)
			}
		}
		project.Name = name
	}
	if upd.Color != nil {
		project.Color = *upd.Color
	}

	if err := e.store.UpdateProject(ctx, *project); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, &ConflictError{Message: "Project already exists"}
		case errors.Is(err, store.ErrNotFound):
			return nil, &NotFoundError{Resource: "Project"}
		}
		return nil, e.storeErr("updating project", err)
	}

	return project, nil
}

// DeleteProject removes one of the owner's projects. Every task of the same
// owner referencing the project's name is moved to the "General" bucket in
// the same transaction, reassignment first, so no task is ever left pointing
// at the deleted name.
func (e *Engine) DeleteProject(ctx context.Context, ownerID, id string) error {
	project, err := e.store.GetProjectByID(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "Project"}
	}
	if err != nil {
		return e.storeErr("getting project", err)
	}

	err = e.store.DeleteProjectReassignTasks(ctx, ownerID, id, project.Name, model.GeneralProject)
	if errors.Is(err, store.ErrNotFound) {
		// A concurrent delete won; report the usual miss.
		return &NotFoundError{Resource: "Project"}
	}
	if err != nil {
		return e.storeErr("deleting project", err)
	}
	return nil
}

// ListTasks returns the owner's tasks matching the filter, most recent
// first. Filter values are matched exactly; an unknown status or priority
// simply matches nothing.
func (e *Engine) ListTasks(ctx context.Context, ownerID string, filter store.TaskFilter) ([]model.Task, error) {
	tasks, err := e.store.GetTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, e.storeErr("listing tasks", err)
	}
	return tasks, nil
}

// CreateTask validates and persists a new task for the owner. The project
// field is stored as given: it is not checked against existing project
// names.
func (e *Engine) CreateTask(ctx context.Context, ownerID string, draft TaskDraft) (*model.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, newFieldError("title", "Title is required")
	}
	if draft.Status == "" {
		draft.Status = model.StatusTodo
	} else if !model.ValidStatus(draft.Status) {
		return nil, newFieldError("status", "Invalid status value")
	}
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	} else if !model.ValidPriority(draft.Priority) {
		return nil, newFieldError("priority", "Invalid priority value")
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Project:     draft.Project,
		Due:         draft.Due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.store.CreateTask(ctx, task); err != nil {
		return nil, e.storeErr("creating task", err)
	}
	return &task, nil
}

// UpdateTask merges the supplied fields into one of the owner's tasks and
// returns the full post-update record. Unsupplied fields keep their prior
// values.
func (e *Engine) UpdateTask(ctx context.Context, ownerID, id string, upd TaskUpdate) (*model.Task, error) {
	task, err := e.store.GetTaskByID(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Task"}
	}
	if err != nil {
		return nil, e.storeErr("getting task", err)
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, newFieldError("title", "Title is required")
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		if !model.ValidStatus(*upd.Status) {
			return nil, newFieldError("status", "Invalid status value")
		}
		task.Status = *upd.Status
	}
	if upd.Priority != nil {
		if !model.ValidPriority(*upd.Priority) {
			return nil, newFieldError("priority", "Invalid priority value")
		}
		task.Priority = *upd.Priority
	}
	if upd.Project != nil {
		task.Project = *upd.Project
	}
	if upd.Due != nil {
		task.Due = upd.Due
	}
	task.UpdatedAt = time.Now().UTC()

	if err := e.store.UpdateTask(ctx, *task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Task"}
		}
		return nil, e.storeErr("updating task", err)
	}
	return task, nil
}

// DeleteTask removes one of the owner's tasks. Deleting a task never touches
// any project.
func (e *Engine) DeleteTask(ctx context.Context, ownerID, id string) error {
	err := e.store.DeleteTask(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "Task"}
	}
	if err != nil {
		return e.storeErr("deleting task", err)
	}
	return nil
}

// storeErr logs an unexpected persistence failure and wraps it for the API
// layer, which responds with a generic message.
func (e *Engine) storeErr(op string, err error) error {
	e.logger.Error("store failure", "op", op, "error", err)
	return &StoreError{Op: op, Err: err}
}
