package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abubakkersiddiqq/taskflow/internal/model"
)

// CreateTask inserts a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, owner_id, title, description, status, priority,
			project, due, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, task.Description, task.Status,
		task.Priority, task.Project, task.Due, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// UpdateTask writes all mutable fields of an existing task, scoped to its
// owner.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?,
			project = ?, due = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		task.Title, task.Description, task.Status, task.Priority,
		task.Project, task.Due, task.UpdatedAt,
		task.ID, task.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by id within the owner's scope.
func (s *SQLiteStore) DeleteTask(ctx context.Context, ownerID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTaskByID retrieves a single task by id within the owner's scope.
func (s *SQLiteStore) GetTaskByID(
	ctx context.Context,
	ownerID, id string,
) (*model.Task, error) {
	var task model.Task
	err := s.db.GetContext(ctx, &task,
		"SELECT * FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// GetTasks retrieves the owner's tasks matching the filter, most recent
// first.
func (s *SQLiteStore) GetTasks(
	ctx context.Context,
	ownerID string,
	filter TaskFilter,
) ([]model.Task, error) {
	conditions := []string{"owner_id = ?"}
	args := []interface{}{ownerID}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Project != nil {
		conditions = append(conditions, "project = ?")
		args = append(args, *filter.Project)
	}

	query := "SELECT * FROM tasks WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC"

	var tasks []model.Task
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}
