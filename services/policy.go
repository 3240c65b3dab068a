package services

import "github.com/SirTebz/CommunityNoticeboard/models"

// Actor is the identity acting on a request. The zero value is an anonymous visitor.
type Actor struct {
	ID    string
	Roles []string
}

// IsAdmin reports whether the actor holds the Admin role.
func (a Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool {
	return a.ID != ""
}

// CanModify reports whether actor may edit or delete a resource owned by ownerID.
func CanModify(actor Actor, ownerID string) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID != "" && actor.ID == ownerID
}

// CanPin reports whether actor may pin or unpin posts.
func CanPin(actor Actor) bool {
	return actor.IsAdmin()
}
