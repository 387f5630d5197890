package dto

import "time"

type CreateAssignmentInput struct {
	Title          string    `json:"title" binding:"required,max=200"`
	Description    string    `json:"description"`
	Class          string    `json:"class" binding:"required,max=50"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	AssignmentType string    `json:"assignment_type" binding:"omitempty,max=50"`
	Points         int       `json:"points" binding:"omitempty,gte=0"`
	TeacherName    string    `json:"teacher_name" binding:"omitempty,max=100"`
	IsPublished    *bool     `json:"is_published"`
	Attachments    []string  `json:"attachments"`
}

type UpdateAssignmentInput struct {
	Title          *string    `json:"title" binding:"omitempty,max=200"`
	Description    *string    `json:"description"`
	Class          *string    `json:"class" binding:"omitempty,max=50"`
	DueDate        *time.Time `json:"due_date"`
	AssignmentType *string    `json:"assignment_type" binding:"omitempty,max=50"`
	Points         *int       `json:"points" binding:"omitempty,gte=0"`
	TeacherName    *string    `json:"teacher_name" binding:"omitempty,max=100"`
	IsPublished    *bool      `json:"is_published"`
	Attachments    []string   `json:"attachments"`
}

type SubmitAssignmentInput struct {
	StudentID      uint     `json:"student_id" binding:"required"`
	SubmittedFiles []string `json:"submitted_files"`
	Notes          string   `json:"notes"`
}

// SubmissionView is the teacher-facing row for a submitted assignment.
type SubmissionView struct {
	AssignmentID    uint       `json:"assignment_id"`
	AssignmentTitle string     `json:"assignment_title"`
	Class           string     `json:"class"`
	StudentID       uint       `json:"student_id"`
	StudentName     string     `json:"student_name"`
	SubmissionDate  *time.Time `json:"submission_date"`
	SubmittedFiles  []string   `json:"submitted_files"`
	Notes           string     `json:"notes"`
	Graded          bool       `json:"graded"`
}
