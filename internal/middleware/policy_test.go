package middleware_test

import (
	"net/http"
	"testing"

	"cashcard_system/internal/identity"
	"cashcard_system/internal/middleware"

	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	policy := middleware.DefaultPolicy()

	tests := []struct {
		name          string
		method        string
		path          string
		hasCredential bool
		wantAllow     bool
		wantRole      string
	}{
		{"anonymous create", http.MethodPost, "/cashcards", false, true, ""},
		{"authenticated create", http.MethodPost, "/cashcards", true, true, ""},
		{"credential-less get", http.MethodGet, "/cashcards/99", false, true, ""},
		{"credential-less list", http.MethodGet, "/cashcards", false, true, ""},
		{"authenticated get needs role", http.MethodGet, "/cashcards/99", true, false, identity.RoleCardOwner},
		{"authenticated list needs role", http.MethodGet, "/cashcards", true, false, identity.RoleCardOwner},
		{"update needs role", http.MethodPut, "/cashcards/99", true, false, identity.RoleCardOwner},
		{"anonymous update needs role", http.MethodPut, "/cashcards/99", false, false, identity.RoleCardOwner},
		{"delete needs role", http.MethodDelete, "/cashcards/99", true, false, identity.RoleCardOwner},
		{"unmatched path falls back to role", http.MethodPatch, "/elsewhere", true, false, identity.RoleCardOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := policy.Evaluate(tt.method, tt.path, tt.hasCredential)
			require.Equal(t, tt.wantAllow, rule.Allow)
			if !tt.wantAllow {
				require.Equal(t, tt.wantRole, rule.Role)
			}
		})
	}
}
