// Package roles defines the closed set of account roles and the
// permission predicates the handlers and services dispatch on.
package roles

type Role string

const (
	Anonymous Role = "anonymous"
	User      Role = "user"
	Moderator Role = "moderator"
	Admin     Role = "admin"
	Superuser Role = "superuser"
)

// Assignable lists the roles an admin may set on an account.
var Assignable = []Role{User, Moderator, Admin, Superuser}

func Valid(r Role) bool {
	switch r {
	case Anonymous, User, Moderator, Admin, Superuser:
		return true
	}
	return false
}

// IsAuthenticated reports whether the role belongs to a signed-in account.
func IsAuthenticated(r Role) bool {
	switch r {
	case User, Moderator, Admin, Superuser:
		return true
	}
	return false
}

// IsAdmin reports whether the role has full catalog and account control.
// Superuser counts as admin everywhere.
func IsAdmin(r Role) bool {
	return r == Admin || r == Superuser
}

// IsModerator reports whether the role may edit or remove any review or
// comment regardless of authorship.
func IsModerator(r Role) bool {
	return r == Moderator || IsAdmin(r)
}

// CanModifyAuthored decides mutating access to an authored resource
// (review or comment): the author themselves, or any moderator-tier role.
func CanModifyAuthored(r Role, actorID, authorID string) bool {
	if !IsAuthenticated(r) {
		return false
	}
	if IsModerator(r) {
		return true
	}
	return actorID != "" && actorID == authorID
}
