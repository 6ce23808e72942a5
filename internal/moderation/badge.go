package moderation

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lostfound/moderation/types"
)

// Severity classifies how a badge should be rendered.
type Severity string

const (
	SeverityNeutral  Severity = "neutral"
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
)

// Badge is the display label of a record's status.
type Badge struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

var statusSeverity = map[string]Severity{
	string(types.ItemStatusPending):   SeverityNeutral,
	string(types.ItemStatusApproved):  SeverityPositive,
	string(types.ItemStatusRejected):  SeverityNegative,
	string(types.UserStatusActive):    SeverityPositive,
	string(types.UserStatusSuspended): SeverityNegative,
}

// BadgeFor derives the badge of a status. A positive report count
// overrides the status.
func BadgeFor(status string, reportCount int) Badge {
	if reportCount > 0 {
		return Badge{Label: fmt.Sprintf("Reported (%d)", reportCount), Severity: SeverityNegative}
	}
	severity, ok := statusSeverity[status]
	if !ok {
		severity = SeverityNeutral
	}
	// Casers keep state between calls and are not shared.
	return Badge{Label: cases.Title(language.English).String(status), Severity: severity}
}

// ItemBadge derives the badge of a listing.
func ItemBadge(item types.Item) Badge {
	return BadgeFor(string(item.Status), item.ReportCount)
}

// UserBadge derives the badge of an account.
func UserBadge(user types.User) Badge {
	return BadgeFor(string(user.Status), 0)
}
