package models

import "time"

// Scenario is one of the four fixed roleplay scenarios every teacher works
// through. The catalog is reference data seeded at startup and never edited
// through the API.
type Scenario struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Difficulty  string    `gorm:"size:32" json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogSize is the number of scenarios in the fixed program. Completion of
// a teacher's program is defined as one completed attempt per catalog entry.
const CatalogSize = 4

// ScenarioCatalog returns the fixed set of scenarios used to seed the catalog.
func ScenarioCatalog() []Scenario {
	return []Scenario{
		{ID: 1, Title: "Classroom Management", Description: "Handle a disruptive classroom while keeping the lesson on track.", Difficulty: "beginner"},
		{ID: 2, Title: "Parent-Teacher Conference", Description: "Discuss a struggling student's progress with a concerned parent.", Difficulty: "intermediate"},
		{ID: 3, Title: "Differentiated Instruction", Description: "Adapt a lesson plan for a classroom with mixed ability levels.", Difficulty: "intermediate"},
		{ID: 4, Title: "Peer Conflict Resolution", Description: "Mediate a conflict between two students without taking sides.", Difficulty: "advanced"},
	}
}
