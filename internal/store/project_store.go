package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abubakkersiddiqq/taskflow/internal/model"
)

// CreateProject inserts a new project. Returns ErrDuplicate when the owner
// already has a project with the same name.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, owner_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.OwnerID, project.Name, project.Color, project.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// UpdateProject writes the name and color of an existing project. The update
// is scoped to the project's owner; a row held by another owner counts as
// not found.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, color = ? WHERE id = ? AND owner_id = ?",
		project.Name, project.Color, project.ID, project.OwnerID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProjectByID retrieves a single project by id within the owner's scope.
func (s *SQLiteStore) GetProjectByID(
	ctx context.Context,
	ownerID, id string,
) (*model.Project, error) {
	var project model.Project
	err := s.db.GetContext(ctx, &project,
		"SELECT * FROM projects WHERE id = ? AND owner_id = ?", id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &project, nil
}

// GetProjectByName retrieves a project by its exact name within the owner's
// scope. Name matching is case-sensitive, as persisted.
func (s *SQLiteStore) GetProjectByName(
	ctx context.Context,
	ownerID, name string,
) (*model.Project, error) {
	var project model.Project
	err := s.db.GetContext(ctx, &project,
		"SELECT * FROM projects WHERE owner_id = ? AND name = ?", ownerID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %q: %w", name, err)
	}
	return &project, nil
}

// GetProjects retrieves all of the owner's projects, oldest first.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	ownerID string,
) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE owner_id = ? ORDER BY created_at ASC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// DeleteProjectReassignTasks moves the owner's tasks referencing name into
// the fallback bucket and deletes the project row, as one transaction. The
// reassignment runs first so a crash mid-sequence leaves tasks already moved
// and the project row still present, never the reverse.
func (s *SQLiteStore) DeleteProjectReassignTasks(
	ctx context.Context,
	ownerID, id, name, fallback string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET project = ? WHERE owner_id = ? AND project = ?",
		fallback, ownerID, name,
	)
	if err != nil {
		return fmt.Errorf("reassigning tasks for project %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM projects WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Concurrent delete already removed the row; roll back the
		// reassignment so the second caller observes a clean miss.
		return ErrNotFound
	}

	return tx.Commit()
}
