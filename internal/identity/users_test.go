package identity_test

import (
	"testing"

	"cashcard_system/internal/identity"

	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	users := identity.NewStore(identity.DefaultUsers()...)

	user, ok := users.Authenticate("sarah1", "abc123")
	require.True(t, ok)
	require.Equal(t, "sarah1", user.Username)
	require.Equal(t, identity.RoleCardOwner, user.Role)

	user, ok = users.Authenticate("hank-owns-no-cards", "qrs456")
	require.True(t, ok)
	require.Equal(t, identity.RoleNonOwner, user.Role)

	_, ok = users.Authenticate("sarah1", "wrong")
	require.False(t, ok)

	_, ok = users.Authenticate("nobody", "abc123")
	require.False(t, ok)
}
