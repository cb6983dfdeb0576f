package identity

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Roles recognised by the access policy.
const (
	RoleCardOwner = "card-owner" // May reach the protected cash card routes
	RoleNonOwner  = "non-owner"  // Authenticates fine but holds no card access
)

// User is a provisioned identity with a bcrypt-hashed password.
type User struct {
	Username     string
	PasswordHash []byte
	Role         string
}

// NewUser hashes the given password and returns a provisioned user.
func NewUser(username, password, role string) User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return User{Username: username, PasswordHash: hash, Role: role}
}

// DefaultUsers returns the provisioned test identities: two card owners and
// one principal with no card access.
func DefaultUsers() []User {
	return []User{
		NewUser("sarah1", "abc123", RoleCardOwner),
		NewUser("kumar2", "xyz789", RoleCardOwner),
		NewUser("hank-owns-no-cards", "qrs456", RoleNonOwner),
	}
}

// Store holds the provisioned users, keyed by username.
type Store struct {
	users map[string]User
}

// NewStore builds a credential store from the given users.
func NewStore(users ...User) *Store {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Store{users: byName}
}

// Authenticate checks a username/password pair against the provisioned users
// and returns the matching user.
func (s *Store) Authenticate(username, password string) (*User, bool) {
	user, ok := s.users[username]
	if !ok {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, false
	}
	return &user, true
}
