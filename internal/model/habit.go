package model

import "time"

// Habit is a trackable recurring behavior.
type Habit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Frequency   string    `json:"frequency"` // free-form, e.g. daily
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// HabitFields are the columns a partial update may touch.
var HabitFields = []string{"name", "description", "frequency", "category"}
