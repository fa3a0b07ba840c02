package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, r := range []Role{Anonymous, User, Moderator, Admin, Superuser} {
		assert.True(t, Valid(r))
	}
	assert.False(t, Valid(Role("emperor")))
	assert.False(t, Valid(Role("")))
}

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, IsAuthenticated(Anonymous))
	assert.True(t, IsAuthenticated(User))
	assert.True(t, IsAuthenticated(Moderator))
	assert.True(t, IsAuthenticated(Admin))
	assert.True(t, IsAuthenticated(Superuser))
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(Anonymous))
	assert.False(t, IsAdmin(User))
	assert.False(t, IsAdmin(Moderator))
	assert.True(t, IsAdmin(Admin))
	assert.True(t, IsAdmin(Superuser))
}

func TestIsModerator(t *testing.T) {
	assert.False(t, IsModerator(User))
	assert.True(t, IsModerator(Moderator))
	assert.True(t, IsModerator(Admin))
	assert.True(t, IsModerator(Superuser))
}

func TestCanModifyAuthored(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		actorID  string
		authorID string
		expected bool
	}{
		{"author edits own", User, "a", "a", true},
		{"stranger denied", User, "b", "a", false},
		{"moderator edits any", Moderator, "b", "a", true},
		{"admin edits any", Admin, "b", "a", true},
		{"superuser edits any", Superuser, "b", "a", true},
		{"anonymous denied", Anonymous, "a", "a", false},
		{"empty actor denied", User, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanModifyAuthored(tt.role, tt.actorID, tt.authorID))
		})
	}
}
