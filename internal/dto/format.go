package dto

import (
	"fmt"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
)

// Presentation formatting for persisted values. Kept here so entities stay
// free of display concerns.

// LetterForPercentage maps a percentage to a letter grade on the standard
// 90/80/70/60 scale.
func LetterForPercentage(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

// ColorForPercentage returns the hex color used for grade badges.
func ColorForPercentage(pct float64) string {
	switch {
	case pct >= 90:
		return "#28a745"
	case pct >= 80:
		return "#17a2b8"
	case pct >= 70:
		return "#ffc107"
	case pct >= 60:
		return "#fd7e14"
	default:
		return "#dc3545"
	}
}

// BadgeForAverage labels a running average for dashboard cards.
func BadgeForAverage(avg *float64) string {
	if avg == nil {
		return "No Grades"
	}
	switch {
	case *avg >= 90:
		return "Excellent"
	case *avg >= 80:
		return "Good"
	case *avg >= 70:
		return "Fair"
	case *avg >= 60:
		return "Needs Work"
	default:
		return "At Risk"
	}
}

func RoleDisplayName(r model.Role) string {
	switch r {
	case model.RoleAdmin:
		return "Administrator"
	case model.RoleParent:
		return "Parent"
	case model.RoleKid:
		return "Student"
	case model.RoleTeacher:
		return "Teacher"
	}
	return string(r)
}

func StatusBadge(s model.RequestStatus) string {
	switch s {
	case model.RequestPending:
		return "Awaiting Review"
	case model.RequestCompleted:
		return "Processed"
	case model.RequestCancelled:
		return "Cancelled"
	}
	return string(s)
}

// TimeAgo renders a coarse relative timestamp for list views.
func TimeAgo(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
