// Package services contains application services for the survey client:
// authentication with profile bootstrap, and the survey operations
// themselves. Services depend only on the client.Client capability
// interface, so tests run against an in-memory fake.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ymiyake/enquete/internal/client/client"
	"github.com/ymiyake/enquete/internal/client/models"
	"github.com/ymiyake/enquete/internal/common"
)

// AuthService defines authentication and profile operations.
//
// Contract:
//   - SignIn/SignUp: authenticate against the identity service; the
//     returned session is fully populated on success.
//   - LoadProfile: read the caller's profile record; returns (nil, nil)
//     when the record is absent or carries no display name, signalling
//     that the caller should be prompted for one.
//   - SaveProfile: write a profile record for the session's user. A blank
//     name falls back to the local part of the session email.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	LoadProfile(ctx context.Context, session *models.Session) (*models.Profile, error)
	SaveProfile(ctx context.Context, session *models.Session, name string) (*models.Profile, error)
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign-in error: %w", err)
	}
	return s, nil
}

func (a *authService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign-up error: %w", err)
	}
	return s, nil
}

func (a *authService) LoadProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	raw, err := a.client.Get(ctx, "users/"+session.UserID)
	if err != nil {
		return nil, fmt.Errorf("profile read error: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil
	}
	if p.Name == "" {
		return nil, nil
	}
	return &p, nil
}

func (a *authService) SaveProfile(ctx context.Context, session *models.Session, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = common.EmailLocalPart(session.Email)
	}

	p := &models.Profile{
		ID:    session.UserID,
		Name:  name,
		Email: session.Email,
	}
	if err := a.client.Put(ctx, "users/"+session.UserID, p); err != nil {
		return nil, fmt.Errorf("profile write error: %w", err)
	}
	return p, nil
}
