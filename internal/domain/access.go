package domain

import "slices"

// Authorize reports whether user holds one of the required roles.
// A nil user is never authorized; an empty role list admits any signed-in user.
func Authorize(user *User, roles ...Role) bool {
	if user == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return slices.Contains(roles, user.Role)
}

// CanView reports whether viewer may see p. A nil viewer is anonymous and
// only sees public prototypes.
func CanView(viewer *User, p Prototype) bool {
	switch p.AccessLevel {
	case AccessPublic:
		return true
	case AccessPrivate:
		return viewer != nil && (viewer.Role == RoleAdmin || viewer.ID == p.AuthorID)
	case AccessRestricted:
		if viewer == nil {
			return false
		}
		if viewer.Role == RoleAdmin || viewer.ID == p.AuthorID {
			return true
		}
		return slices.Contains(p.AllowedUsers, viewer.ID)
	}
	return false
}
