package models

import "time"

// Evaluation is the aggregate summary generated once a teacher completes all
// four scenarios. One row per teacher; regenerated in place on later
// submissions so late score corrections are absorbed. No revision history.
type Evaluation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TeacherID   uint      `gorm:"not null;uniqueIndex" json:"teacher_id"`
	Summary     string    `gorm:"type:text;not null" json:"summary"`
	MeanScore   float64   `gorm:"not null" json:"mean_score"`
	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Teacher     User      `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
