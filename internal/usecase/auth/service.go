package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

const (
	msgUsernameTaken   = "A user with that username already exists."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordNumeric = "This password is entirely numeric."
	msgPasswordSimilar = "The password is too similar to the username."
	msgPasswordMatch   = "The two password fields didn't match."

	minPasswordLength = 8
)

type RegisterInput struct {
	Username        string `json:"username" validate:"notblank,max=150,username"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service struct {
	accounts repository.AccountRepository
	cost     int
}

func NewService(accounts repository.AccountRepository) *Service {
	return &Service{accounts: accounts, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost for new hashes.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Register creates an account holding role. Field problems come back as
// validation.Errors keyed by the input's json names.
func (s *Service) Register(ctx context.Context, role account.Role, in RegisterInput) (account.Account, error) {
	if !role.Valid() {
		return account.Account{}, ErrInvalidInput
	}

	in.Username = strings.TrimSpace(in.Username)
	errs := validation.Struct(in)
	if _, bad := errs["password"]; !bad {
		if msg := checkPassword(in.Password, in.Username); msg != "" {
			errs.Add("password", msg)
		}
	}
	if _, bad := errs["password_confirm"]; !bad && in.Password != in.PasswordConfirm {
		errs.Add("password_confirm", msgPasswordMatch)
	}
	if _, bad := errs["username"]; !bad {
		exists, err := s.accounts.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return account.Account{}, ErrInternal
		}
		if exists {
			errs.Add("username", msgUsernameTaken)
		}
	}
	if !errs.Empty() {
		return account.Account{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return account.Account{}, ErrInternal
	}

	acc := account.Account{
		ID:           uuid.New(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return account.Account{}, validation.Errors{"username": msgUsernameTaken}
		}
		return account.Account{}, ErrInternal
	}

	created, err := s.accounts.GetByID(ctx, acc.ID)
	if err != nil {
		return account.Account{}, ErrInternal
	}
	return sanitizeAccount(created), nil
}

// Login answers ErrInvalidCredentials for unknown usernames and wrong
// passwords alike, spending a bcrypt comparison in both cases.
func (s *Service) Login(ctx context.Context, in LoginInput) (account.Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return account.Account{}, ErrInvalidCredentials
	}

	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
			return account.Account{}, ErrInvalidCredentials
		}
		return account.Account{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return account.Account{}, ErrInvalidCredentials
	}

	return sanitizeAccount(acc), nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("job-connect-dummy-password"), bcrypt.DefaultCost)
	})
	return dummy
}

// checkPassword returns the first policy violation, or "".
func checkPassword(pw, username string) string {
	if len([]rune(pw)) < minPasswordLength {
		return msgPasswordShort
	}
	numeric := true
	for _, r := range pw {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return msgPasswordNumeric
	}
	if username != "" && strings.EqualFold(pw, username) {
		return msgPasswordSimilar
	}
	return ""
}

func sanitizeAccount(a account.Account) account.Account {
	a.PasswordHash = ""
	return a
}
