package models

import "time"

// User represents an account on the platform, either a teacher in training
// or an administrator reviewing results.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	Role            string    `gorm:"size:32;not null;default:teacher" json:"role"`
	Phone           string    `gorm:"size:64" json:"phone"`
	Subject         string    `gorm:"size:255" json:"subject"`
	YearsExperience int       `gorm:"default:0" json:"years_experience"`
	Institution     string    `gorm:"size:255" json:"institution"`
	Avatar          string    `gorm:"size:512" json:"avatar"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	// RoleTeacher marks accounts that work through the scenario program.
	RoleTeacher = "teacher"
	// RoleAdmin marks accounts that review aggregated results.
	RoleAdmin = "admin"
)

// IsTeacher reports whether the account belongs to a teacher in training.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
