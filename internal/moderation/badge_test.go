package moderation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/types"
)

func TestReportedBadgeOverridesStatus(t *testing.T) {
	item := types.Item{ID: "3", Status: types.ItemStatusPending, ReportCount: 3}

	assert.True(t, moderation.MatchItem(item, moderation.FilterReported, ""))
	assert.Equal(t, moderation.Badge{Label: "Reported (3)", Severity: moderation.SeverityNegative}, moderation.ItemBadge(item))
}

func TestStatusBadges(t *testing.T) {
	cases := []struct {
		status string
		want   moderation.Badge
	}{
		{"pending", moderation.Badge{Label: "Pending", Severity: moderation.SeverityNeutral}},
		{"approved", moderation.Badge{Label: "Approved", Severity: moderation.SeverityPositive}},
		{"rejected", moderation.Badge{Label: "Rejected", Severity: moderation.SeverityNegative}},
		{"active", moderation.Badge{Label: "Active", Severity: moderation.SeverityPositive}},
		{"suspended", moderation.Badge{Label: "Suspended", Severity: moderation.SeverityNegative}},
		{"archived", moderation.Badge{Label: "Archived", Severity: moderation.SeverityNeutral}},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, moderation.BadgeFor(tc.status, 0))
		})
	}
}

func TestUserBadge(t *testing.T) {
	badge := moderation.UserBadge(types.User{Status: types.UserStatusSuspended})
	assert.Equal(t, "Suspended", badge.Label)
	assert.Equal(t, moderation.SeverityNegative, badge.Severity)
}
