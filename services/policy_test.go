package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SirTebz/CommunityNoticeboard/models"
)

func TestCanModify(t *testing.T) {
	owner := "u-1"
	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner non-admin", Actor{ID: owner, Roles: []string{models.RoleUser}}, true},
		{"owner admin", Actor{ID: owner, Roles: []string{models.RoleUser, models.RoleAdmin}}, true},
		{"other admin", Actor{ID: "u-2", Roles: []string{models.RoleAdmin}}, true},
		{"other non-admin", Actor{ID: "u-2", Roles: []string{models.RoleUser}}, false},
		{"anonymous", Actor{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModify(tc.actor, owner))
		})
	}
}

func TestCanModify_AnonymousNeverOwnsEmptyOwner(t *testing.T) {
	assert.False(t, CanModify(Actor{}, ""))
}

func TestCanPin(t *testing.T) {
	assert.True(t, CanPin(Actor{ID: "a", Roles: []string{models.RoleAdmin}}))
	assert.False(t, CanPin(Actor{ID: "a", Roles: []string{models.RoleUser}}))
	assert.False(t, CanPin(Actor{}))
}
