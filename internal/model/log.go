package model

// DateLayout is the on-disk and wire format of Log.LogDate.
// Fixed-width and zero-padded, so string order equals calendar order.
const DateLayout = "2006-01-02"

// DefaultLogStatus is stored when a completion is logged without a status.
const DefaultLogStatus = "completed"

// Log is a single dated completion record of a habit.
// HabitID is not a foreign key: logs outlive the habit they point to.
type Log struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	HabitID uint   `gorm:"index" json:"habit_id"`
	LogDate string `gorm:"type:text;index" json:"log_date"`
	Status  string `json:"status"`
}
