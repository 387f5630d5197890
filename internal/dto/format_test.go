package dto

import (
	"testing"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLetterForPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterForPercentage(tt.pct), "pct=%v", tt.pct)
	}
}

func TestColorForPercentage(t *testing.T) {
	assert.Equal(t, "#28a745", ColorForPercentage(95))
	assert.Equal(t, "#17a2b8", ColorForPercentage(85))
	assert.Equal(t, "#ffc107", ColorForPercentage(75))
	assert.Equal(t, "#fd7e14", ColorForPercentage(65))
	assert.Equal(t, "#dc3545", ColorForPercentage(30))
}

func TestBadgeForAverage(t *testing.T) {
	assert.Equal(t, "No Grades", BadgeForAverage(nil))

	avg := 92.0
	assert.Equal(t, "Excellent", BadgeForAverage(&avg))
	avg = 55
	assert.Equal(t, "At Risk", BadgeForAverage(&avg))
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "Student", RoleDisplayName(model.RoleKid))
	assert.Equal(t, "Administrator", RoleDisplayName(model.RoleAdmin))
	// Unknown roles pass through verbatim.
	assert.Equal(t, "Wizard", RoleDisplayName(model.Role("Wizard")))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-10 * time.Minute), "10 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-6 * 24 * time.Hour), "6 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.t, now))
		})
	}
}
