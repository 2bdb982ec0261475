package model

// Recommendation nudges the user towards a habit not logged today.
type Recommendation struct {
	HabitID        uint   `json:"habit_id"`
	Recommendation string `json:"recommendation"`
}
