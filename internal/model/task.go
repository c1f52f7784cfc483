package model

import "time"

// Task status constants.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// GeneralProject is the synthetic fallback bucket tasks land in when the
// project they reference is deleted. It is never persisted as a Project row.
const GeneralProject = "General"

// Task is a single task item owned by one user. Project holds the name of
// one of the owner's projects as a plain string; it is a soft reference and
// may point at a name no project currently holds.
type Task struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	Priority    string     `json:"priority" db:"priority"`
	Project     string     `json:"project" db:"project"`
	Due         *time.Time `json:"due,omitempty" db:"due"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidStatus reports whether s is one of the task status values.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ValidPriority reports whether p is one of the task priority values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// NextStatus returns the successor of a status in the fixed cycle
// todo -> in-progress -> done -> todo. The server has no cycle endpoint;
// clients apply this mapping in front of an ordinary update.
func NextStatus(s string) string {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}
