package service

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// UserService manages identities and role assignment.
type UserService struct {
	users UserStore
	roles RoleInvalidator
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, roles RoleInvalidator) *UserService {
	return &UserService{users: users, roles: roles}
}

// Upsert creates or updates a profile. It never changes the role.
func (s *UserService) Upsert(ctx context.Context, email string, req model.UpsertUserRequest) (*model.Identity, error) {
	email = normalizeEmail(email)
	if err := model.ValidateVar("email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	u, err := s.users.Upsert(ctx, email, req)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	s.roles.Forget(ctx, email)
	return u, nil
}

// List returns every identity.
func (s *UserService) List(ctx context.Context) ([]model.Identity, error) {
	return nonNil(s.users.List(ctx))
}

// ListByRole returns identities holding the named role.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]model.Identity, error) {
	r, err := model.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return nonNil(s.users.ListByRole(ctx, r))
}

// SetRole assigns a role. Callers must already be admin-gated.
func (s *UserService) SetRole(ctx context.Context, email string, req model.SetRoleRequest) (*model.Identity, error) {
	email = normalizeEmail(email)
	if err := model.ValidateVar("email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	u, err := s.users.SetRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	s.roles.Forget(ctx, email)
	return u, nil
}
