package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/its-platform/apiserver/internal/auth"
	"github.com/its-platform/apiserver/internal/store"
	"github.com/its-platform/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	GetActiveByEmail(ctx context.Context, email string) (types.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// AuthService implements registration, login, and profile management.
type AuthService struct {
	users  UserRepository
	tokens *auth.TokenProvider
}

func NewAuthService(users UserRepository, tokens *auth.TokenProvider) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Institution string `json:"institution"`
}

const (
	passwordMinLen = 6
	passwordMaxLen = 40
)

// Validate collects the failed constraints of the registration body.
func (in RegisterInput) Validate() error {
	var fields []FieldError
	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, FieldError{Field: "email", Message: "email should be valid"})
	}
	if len(in.Password) < passwordMinLen || len(in.Password) > passwordMaxLen {
		fields = append(fields, FieldError{Field: "password", Message: "password must be between 6 and 40 characters"})
	}
	return validationError(fields)
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	}
	if in.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "password is required"})
	}
	return validationError(fields)
}

// ProfileInput is the profile-update request body.
type ProfileInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Institution string `json:"institution"`
	Expertise   string `json:"expertise"`
}

// AuthResult pairs an issued token with the user's public view.
type AuthResult struct {
	AccessToken string         `json:"accessToken"`
	TokenType   string         `json:"tokenType"`
	User        types.UserView `json:"user"`
}

// Register creates an account and returns a bearer token for it.
// The email is lower-case normalized; a duplicate registration fails
// with ErrEmailTaken even when two requests race, via the unique
// index on users.email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := in.Validate(); err != nil {
		return AuthResult{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.Create(ctx, types.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         types.ParseUserRole(in.Role),
		Active:       true,
		Profile: types.UserProfile{
			FirstName:   strings.TrimSpace(in.FirstName),
			LastName:    strings.TrimSpace(in.LastName),
			Institution: strings.TrimSpace(in.Institution),
		},
	})
	if err != nil {
		if err == store.ErrDuplicateKey {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	return s.authResult(user)
}

// Login verifies credentials against the active user with the given
// email. Unknown email, inactive account, and wrong password all
// fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if err := in.Validate(); err != nil {
		return AuthResult{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.authResult(user)
}

// IsEmailExists is the public probe backing the registration form.
func (s *AuthService) IsEmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GetCurrentUser returns the public view of the given account.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (types.UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return types.UserView{}, err
	}
	return user.View(), nil
}

// UpdateProfile overwrites the profile of the authenticated user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (types.UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return types.UserView{}, err
	}

	user.Profile = types.UserProfile{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Avatar:      strings.TrimSpace(in.Avatar),
		Bio:         strings.TrimSpace(in.Bio),
		Institution: strings.TrimSpace(in.Institution),
		Expertise:   strings.TrimSpace(in.Expertise),
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return types.UserView{}, err
	}
	return updated.View(), nil
}

func (s *AuthService) authResult(user types.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.View(),
	}, nil
}
