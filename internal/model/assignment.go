package model

import (
	"encoding/json"
	"time"
)

// StringList is a list of file names/URLs stored as a JSON text blob, the same
// shape the mobile client has always written.
type StringList []string

func (l StringList) Marshal() string {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func ParseStringList(s string) StringList {
	if s == "" {
		return StringList{}
	}
	var l StringList
	if err := json.Unmarshal([]byte(s), &l); err != nil || l == nil {
		return StringList{}
	}
	return l
}

type Assignment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Class          string    `gorm:"size:50;index" json:"class"`
	DueDate        time.Time `json:"due_date"`
	AssignmentType string    `gorm:"size:50;index" json:"assignment_type"`
	Points         int       `json:"points"`
	TeacherName    string    `gorm:"size:100;index" json:"teacher_name"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsPublished    bool      `gorm:"not null;default:true" json:"is_published"`

	// Attachments serialized as a JSON list-of-string blob.
	AttachmentsJSON string `gorm:"column:attachments_json;type:text;default:'[]'" json:"-"`

	// Inline submission state. An assignment counts as submitted only when
	// IsSubmitted is set and SubmissionDate is non-nil.
	IsSubmitted        bool       `gorm:"not null;default:false" json:"is_submitted"`
	SubmissionDate     *time.Time `json:"submission_date,omitempty"`
	StudentID          *uint      `gorm:"index" json:"student_id,omitempty"`
	SubmittedFilesJSON string     `gorm:"column:submitted_files_json;type:text;default:'[]'" json:"-"`
	SubmissionNotes    string     `gorm:"type:text" json:"submission_notes"`
}

func (a *Assignment) Attachments() StringList {
	return ParseStringList(a.AttachmentsJSON)
}

func (a *Assignment) SetAttachments(files StringList) {
	a.AttachmentsJSON = files.Marshal()
}

func (a *Assignment) SubmittedFiles() StringList {
	return ParseStringList(a.SubmittedFilesJSON)
}

func (a *Assignment) SetSubmittedFiles(files StringList) {
	a.SubmittedFilesJSON = files.Marshal()
}

// Submitted reports the submission invariant: both the flag and the date must
// be present.
func (a *Assignment) Submitted() bool {
	return a.IsSubmitted && a.SubmissionDate != nil
}
