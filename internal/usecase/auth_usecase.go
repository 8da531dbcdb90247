package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/profile"
	"job-connect/internal/pkg/jwt"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"
	ucauth "job-connect/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenRevoker is the deny-list consulted for logged-out tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session is the result of a successful signup, login or refresh.
type Session struct {
	Account      account.Account
	AccessToken  string
	RefreshToken string
	RedirectTo   string
}

type AuthUsecase interface {
	Register(ctx context.Context, role account.Role, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Logout(ctx context.Context, tokens ...string) error
	Authenticate(ctx context.Context, accessToken string) (*access.Actor, error)
}

type Auth struct {
	authSvc *ucauth.Service
	store   repository.Store
	jwt     jwt.Service
	revoker TokenRevoker
	logger  *logrus.Logger
	now     func() time.Time
}

func NewAuthUsecase(store repository.Store, authSvc *ucauth.Service, jwtSvc jwt.Service, revoker TokenRevoker, logger *logrus.Logger) *Auth {
	if authSvc == nil {
		authSvc = ucauth.NewService(store.Accounts())
	}
	return &Auth{authSvc: authSvc, store: store, jwt: jwtSvc, revoker: revoker, logger: logger, now: time.Now}
}

// Register signs the new account in immediately and points it at its
// role's profile creation page.
func (u *Auth) Register(ctx context.Context, role account.Role, in ucauth.RegisterInput) (Session, error) {
	acc, err := u.authSvc.Register(ctx, role, in)
	if err != nil {
		return Session{}, mapAuthError(err)
	}
	s, err := u.issue(acc)
	if err != nil {
		return Session{}, err
	}
	s.RedirectTo = access.OnboardingPath(acc.Role)
	return s, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	acc, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, mapAuthError(err)
	}
	s, err := u.issue(acc)
	if err != nil {
		return Session{}, err
	}
	s.RedirectTo = access.DashboardPath(acc.Role)
	return s, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return Session{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrRefreshTokenExpired
		}
		return Session{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Session{}, ErrInvalidRefreshToken
	}
	if u.revoked(ctx, claims) {
		return Session{}, ErrInvalidRefreshToken
	}

	acc, err := u.store.Accounts().GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidRefreshToken
		}
		return Session{}, ErrInternal
	}

	// The presented refresh token is single-use.
	u.revoke(ctx, claims)

	s, err := u.issue(acc)
	if err != nil {
		return Session{}, err
	}
	s.RedirectTo = access.DashboardPath(acc.Role)
	return s, nil
}

// Logout revokes every valid token passed in. Invalid or expired tokens are
// ignored since they are already unusable.
func (u *Auth) Logout(ctx context.Context, tokens ...string) error {
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		claims, err := u.jwt.ValidateToken(tok)
		if err != nil {
			continue
		}
		u.revoke(ctx, claims)
	}
	return nil
}

// Authenticate resolves an access token to the calling actor, including the
// id of the role profile when one exists.
func (u *Auth) Authenticate(ctx context.Context, accessToken string) (*access.Actor, error) {
	claims, err := u.jwt.ValidateToken(strings.TrimSpace(accessToken))
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return nil, ErrUnauthorized
	}
	if u.revoked(ctx, claims) {
		return nil, ErrUnauthorized
	}

	acc, err := u.store.Accounts().GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	actor := &access.Actor{AccountID: acc.ID, Username: acc.Username, Role: acc.Role}
	profileID, err := u.profileID(ctx, acc)
	if err != nil {
		return nil, err
	}
	if profileID != uuid.Nil {
		actor.ProfileID = &profileID
	}
	return actor, nil
}

func (u *Auth) profileID(ctx context.Context, acc account.Account) (uuid.UUID, error) {
	var (
		id  uuid.UUID
		err error
	)
	switch acc.Role {
	case account.RoleApplicant:
		id, err = u.store.ApplicantProfiles().IDByAccountID(ctx, acc.ID)
	case account.RoleRecruiter:
		var rp profile.RecruiterProfile
		rp, err = u.store.RecruiterProfiles().GetByAccountID(ctx, acc.ID)
		id = rp.ID
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, ErrInternal
	}
	return id, nil
}

func (u *Auth) issue(acc account.Account) (Session, error) {
	accessTok, err := u.jwt.GenerateAccessToken(acc)
	if err != nil {
		return Session{}, ErrInternal
	}
	refreshTok, err := u.jwt.GenerateRefreshToken(acc)
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{Account: acc, AccessToken: accessTok, RefreshToken: refreshTok}, nil
}

func (u *Auth) revoked(ctx context.Context, claims jwt.Claims) bool {
	if u.revoker == nil {
		return false
	}
	revoked, err := u.revoker.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		if u.logger != nil {
			u.logger.WithError(err).Warn("token deny-list lookup failed")
		}
		return false
	}
	return revoked
}

func (u *Auth) revoke(ctx context.Context, claims jwt.Claims) {
	if u.revoker == nil {
		return
	}
	ttl := claims.ExpiresAtTime().Sub(u.now())
	if ttl <= 0 {
		return
	}
	if err := u.revoker.Revoke(ctx, claims.TokenID(), ttl); err != nil && u.logger != nil {
		u.logger.WithError(err).Warn("token revoke failed")
	}
}

func mapAuthError(err error) error {
	if ve, ok := validation.AsErrors(err); ok {
		return ve
	}
	switch {
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return ucauth.ErrInvalidCredentials
	case errors.Is(err, ucauth.ErrInvalidInput):
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}
