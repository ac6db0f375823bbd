package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// RoutineTask is a single step of a user's daily routine.
type RoutineTask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Period    string `json:"period"` // "morning" or "evening"
	Completed bool   `json:"completed"`
}

// TaskList is a JSON-encoded column of routine tasks. Like StringList it
// fails closed: malformed stored JSON scans to an empty list.
type TaskList []RoutineTask

// Scan implements sql.Scanner.
func (t *TaskList) Scan(value interface{}) error {
	*t = TaskList{}
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var tasks []RoutineTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil
	}
	*t = tasks
	return nil
}

// Value implements driver.Valuer.
func (t TaskList) Value() (driver.Value, error) {
	if t == nil {
		t = TaskList{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Routine stores the current task list for a user, one row per user.
type Routine struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	Tasks     TaskList  `gorm:"type:text" json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
