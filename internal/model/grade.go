package model

import (
	"math"
	"time"
)

// Grade records a score for one (student, assignment) pair. At most one row
// may exist per pair; GradeService enforces this with upsert semantics.
type Grade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"index;not null" json:"student_id"`
	AssignmentID   uint      `gorm:"index;not null" json:"assignment_id"`
	TeacherID      *uint     `gorm:"index" json:"teacher_id,omitempty"`
	NumericalGrade *float64  `json:"numerical_grade,omitempty"`
	MaxPoints      float64   `gorm:"not null;default:100" json:"max_points"`
	LetterGrade    string    `gorm:"size:5" json:"letter_grade"`
	Feedback       string    `gorm:"type:text" json:"feedback"`
	GradedDate     time.Time `json:"graded_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Percentage returns the grade as a percentage rounded to one decimal, or nil
// when no numerical grade is recorded.
func (g *Grade) Percentage() *float64 {
	if g.NumericalGrade == nil || g.MaxPoints <= 0 {
		return nil
	}
	p := math.Round(*g.NumericalGrade/g.MaxPoints*100*10) / 10
	return &p
}
