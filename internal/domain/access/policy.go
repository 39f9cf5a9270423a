package access

import "cms-backend/internal/domain/users"

/*
	Role policy
	-----------
	Every role decision goes through this package instead of being
	re-derived at each call site. Ranks are ordered; a capability is
	a minimum rank.
*/

var roleRank = map[string]int{
	users.RoleSubscriber: 0,
	users.RoleAuthor:     1,
	users.RoleEditor:     2,
	users.RoleAdmin:      3,
	users.RoleSuperAdmin: 4,
}

func rank(role string) int {
	if r, ok := roleRank[role]; ok {
		return r
	}
	return -1
}

// CanManageContent: may create pages/posts and upload media (author and up).
func CanManageContent(role string) bool {
	return rank(role) >= roleRank[users.RoleAuthor]
}

// CanModerate: may edit others' content, approve comments, trash pages
// (editor and up).
func CanModerate(role string) bool {
	return rank(role) >= roleRank[users.RoleEditor]
}

// CanAdminister: may hard-delete content and manage users (admin and up).
func CanAdminister(role string) bool {
	return rank(role) >= roleRank[users.RoleAdmin]
}

// CanEditOwned: the owner may always edit their own resource, everyone
// else needs moderation rights.
func CanEditOwned(role string, ownerID, actorID uint) bool {
	if ownerID == actorID {
		return true
	}
	return CanModerate(role)
}
