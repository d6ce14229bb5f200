// Package identity wraps the external identity provider: session
// verification and the per-user profile record. The synchronized store
// never touches this package; it only ever sees the resulting user id.
package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Session identifies the signed-in caller.
type Session struct {
	UserID string
	Email  string
}

// Verifier turns a bearer token into a session.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (Session, error)
}

type firebaseVerifier struct {
	auth *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *firebaseVerifier {
	return &firebaseVerifier{auth: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (Session, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Session{}, err
	}
	email, _ := token.Claims["email"].(string)
	return Session{UserID: token.UID, Email: email}, nil
}
