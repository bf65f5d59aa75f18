// Package users covers signup, login, following and profile maintenance.
package users

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/auth"
	"github.com/Andryushik/MyDiary/imagestore"
	"github.com/Andryushik/MyDiary/models"
	"github.com/Andryushik/MyDiary/store"
)

type Service struct {
	users  store.UserStore
	tokens *auth.TokenService
	images imagestore.ImageStore
}

func NewService(users store.UserStore, tokens *auth.TokenService, images imagestore.ImageStore) *Service {
	return &Service{users: users, tokens: tokens, images: images}
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Birthday  string `json:"birthday"`
	Country   string `json:"country"`
	Bio       string `json:"bio"`
}

// AuthResult is returned by signup and login: the identity plus a fresh
// bearer token.
type AuthResult struct {
	Email string `json:"email"`
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Signup validates the request, enforces email uniqueness and stores the
// user with a hashed credential. A token is issued immediately so the client
// is logged in after signup.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	const op = "users.Signup"

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  req.Birthday,
		Country:   req.Country,
		Bio:       req.Bio,
		Following: []string{},
		CreatedAt: time.Now(),
	}
	if errorList := models.ValidateUser(user); len(errorList) > 0 {
		return nil, apperr.Validation(op, "invalid user", errorList)
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperr.Conflict(op, "Email already in use")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal(op, "unable to create user, try again later", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(op, "unable to create user, try again later", err)
	}
	user.Password = string(hashed)

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, apperr.Internal(op, "unable to create user, try again later", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Email: user.Email, ID: user.ID.Hex(), Token: token}, nil
}

// Login checks the credential and issues a token. The failure message never
// reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "users.Login"

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Unauthorized(op, "Invalid email or password", nil)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to login, try again later", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(op, "Invalid email or password", nil)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Email: user.Email, ID: user.ID.Hex(), Token: token}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	const op = "users.Get"

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(op, "User not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to get user", err)
	}
	return user, nil
}

// Follow adds targetID to the caller's following set. Idempotent.
func (s *Service) Follow(ctx context.Context, caller, targetID string) error {
	const op = "users.Follow"

	if caller == targetID {
		return apperr.Validation(op, "you cannot follow yourself", nil)
	}
	if _, err := s.users.FindByID(ctx, targetID); errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "User not found", targetID)
	} else if err != nil {
		return apperr.Internal(op, "unable to follow user", err)
	}
	if err := s.users.Follow(ctx, caller, targetID); err != nil {
		return apperr.Internal(op, "unable to follow user", err)
	}
	return nil
}

// Unfollow removes targetID from the caller's following set. Removing an id
// that is not followed, or belongs to a deleted account, is a no-op.
func (s *Service) Unfollow(ctx context.Context, caller, targetID string) error {
	const op = "users.Unfollow"

	if err := s.users.Unfollow(ctx, caller, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "User not found", caller)
		}
		return apperr.Internal(op, "unable to unfollow user", err)
	}
	return nil
}

// UpdateProfile applies a typed partial update to the caller's own profile
// and returns the refreshed record.
func (s *Service) UpdateProfile(ctx context.Context, caller string, update *models.ProfileUpdate) (*models.User, error) {
	const op = "users.UpdateProfile"

	if err := s.users.ApplyProfile(ctx, caller, update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(op, "User not found", caller)
		}
		return nil, apperr.Internal(op, "unable to update profile", err)
	}
	return s.Get(ctx, caller)
}

// UploadProfilePicture stores the blob and points the caller's profile at
// the returned durable URL.
func (s *Service) UploadProfilePicture(ctx context.Context, caller, filename string, blob io.Reader) (string, error) {
	const op = "users.UploadProfilePicture"

	if _, err := s.users.FindByID(ctx, caller); errors.Is(err, store.ErrNotFound) {
		return "", apperr.NotFound(op, "User not found", caller)
	} else if err != nil {
		return "", apperr.Internal(op, "unable to upload profile picture", err)
	}

	url, err := s.images.Upload(ctx, caller, filename, blob)
	if err != nil {
		return "", apperr.External(op, "unable to upload profile picture", err)
	}

	if err := s.users.ApplyProfile(ctx, caller, &models.ProfileUpdate{ProfilePicture: &url}); err != nil {
		return "", apperr.Internal(op, "unable to update profile", err)
	}
	return url, nil
}
