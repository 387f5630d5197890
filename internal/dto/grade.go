package dto

import "time"

type SaveGradeInput struct {
	StudentID      uint     `json:"student_id" binding:"required"`
	AssignmentID   uint     `json:"assignment_id" binding:"required"`
	TeacherID      *uint    `json:"teacher_id"`
	NumericalGrade *float64 `json:"numerical_grade" binding:"omitempty,gte=0"`
	MaxPoints      float64  `json:"max_points" binding:"omitempty,gt=0"`
	LetterGrade    string   `json:"letter_grade" binding:"omitempty,max=5"`
	Feedback       string   `json:"feedback"`
}

// GradeDetail is a grade row joined with assignment and student display
// fields plus derived presentation values.
type GradeDetail struct {
	ID              uint       `json:"id"`
	StudentID       uint       `json:"student_id"`
	StudentName     string     `json:"student_name"`
	AssignmentID    uint       `json:"assignment_id"`
	AssignmentTitle string     `json:"assignment_title"`
	Class           string     `json:"class"`
	NumericalGrade  *float64   `json:"numerical_grade"`
	MaxPoints       float64    `json:"max_points"`
	Percentage      *float64   `json:"percentage"`
	LetterGrade     string     `json:"letter_grade"`
	GradeColor      string     `json:"grade_color"`
	Feedback        string     `json:"feedback"`
	GradedDate      time.Time  `json:"graded_date"`
	GradedAgo       string     `json:"graded_ago"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

type StudentGradeStats struct {
	StudentID    uint     `json:"student_id"`
	GradeCount   int64    `json:"grade_count"`
	Average      *float64 `json:"average_percentage"`
	AverageBadge string   `json:"average_badge"`
}
