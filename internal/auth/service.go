package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrInvalidRole        = errors.New("role must be admin or client")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateUser(email, passwordHash string, role entities.UserRole) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	SetUserRole(email string, role entities.UserRole) error
}

// Service handles registration, login, and token-based identity resolution.
type Service struct {
	users  UserRepository
	tokens *TokenIssuer
	cost   int
}

// NewService creates a new authentication service.
func NewService(users UserRepository, tokens *TokenIssuer, bcryptCost int) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		cost:   bcryptCost,
	}
}

// Register creates a new user with the default client role.
// Returns ErrEmailTaken when the email is already registered; the store's
// unique index decides, not a prior read.
func (s *Service) Register(email, password string) (*entities.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// RFC 5321 caps the address at 254 characters
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	passwordHash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(email, passwordHash, entities.UserRoleClient)
	if errors.Is(err, database.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a bearer token to a user. A valid token whose
// subject no longer maps to an existing user fails the same way as a bad
// token.
func (s *Service) Authenticate(token string) (*entities.User, error) {
	subject, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByEmail(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// SetRole assigns a role to the user with the given email. This is the
// trusted operator path used by the set-role command; it bypasses the
// access policy entirely.
func (s *Service) SetRole(email string, role entities.UserRole) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	err := s.users.SetUserRole(email, role)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
