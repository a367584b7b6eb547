package domain

// Session is the current authenticated identity and credential held by a
// client. The zero value is a valid unauthenticated session.
//
// Invariant: IsAuthenticated implies User != nil and Token != "". The
// converse need not hold while a login is still resolving.
type Session struct {
	User            *User  `json:"user,omitempty"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"is_authenticated"`

	// IsLoading is set only while a login is in flight. It is never
	// persisted: a freshly rehydrated session always starts with it false.
	IsLoading bool `json:"-"`
}

// HasRole reports whether an authenticated user is present and its role is a
// member of roles. An empty roles list always returns false (membership in
// the empty set); callers that treat "no required roles" as "any
// authenticated user" must special-case that before calling.
func (s Session) HasRole(roles ...Role) bool {
	if s.User == nil {
		return false
	}
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}

// Valid reports whether the session satisfies its core invariant.
func (s Session) Valid() bool {
	if s.IsAuthenticated {
		return s.User != nil && s.Token != ""
	}
	return true
}
