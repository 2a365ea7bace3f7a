package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookshelf-api/internal/domains/auth"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/pkg/password"
)

type authService struct {
	repo   auth.Repository
	issuer auth.TokenIssuer
}

func NewAuthService(repo auth.Repository, issuer auth.TokenIssuer) auth.Service {
	return &authService{
		repo:   repo,
		issuer: issuer,
	}
}

func (s *authService) Register(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error) {
	// Presence checks are ordered; the first missing field wins.
	if req.Name == "" {
		return uuid.Nil, apperror.Validation("Name is required!")
	}
	if req.Email == "" {
		return uuid.Nil, apperror.Validation("Email is required!")
	}
	if req.Password == "" {
		return uuid.Nil, apperror.Validation("Password is required!")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return uuid.Nil, apperror.Conflict("Email has been taken")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.Create(ctx, &auth.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the unique constraint catches the loser and it gets the same 403.
		if errors.Is(err, auth.ErrEmailTaken) {
			return uuid.Nil, apperror.Conflict("Email has been taken")
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (string, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return "", apperror.NotFound("User Not Found!")
	}

	ok, err := password.Verify(req.Password, u.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.Unauthorized("Invalid Credentials!")
	}

	tok, err := s.issuer.Issue(u.ID.String(), u.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return tok, nil
}
