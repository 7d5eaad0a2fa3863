// Package models defines the records the client exchanges with the remote
// identity service and the path-addressed data store.
package models

// Session holds the credentials obtained from the identity endpoint.
// It is populated as a whole on a successful sign-in or sign-up and is
// never persisted locally.
type Session struct {
	IDToken      string
	UserID       string
	Email        string
	RefreshToken string
}

// Authenticated reports whether the session carries an identity token.
func (s *Session) Authenticated() bool {
	return s != nil && s.IDToken != ""
}
