package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
)

// ClassService manages class offerings and their approval state.
type ClassService struct {
	classes ClassStore
}

// NewClassService constructs a ClassService.
func NewClassService(classes ClassStore) *ClassService {
	return &ClassService{classes: classes}
}

// ListApproved returns classes open to students, optionally for one instructor.
func (s *ClassService) ListApproved(ctx context.Context, instructorEmail string) ([]model.ClassOffering, error) {
	return nonNil(s.classes.List(ctx, repository.ClassFilter{
		Status:          model.ClassApproved,
		InstructorEmail: normalizeEmail(instructorEmail),
	}))
}

// ListAll returns every class regardless of status.
func (s *ClassService) ListAll(ctx context.Context) ([]model.ClassOffering, error) {
	return nonNil(s.classes.List(ctx, repository.ClassFilter{}))
}

// ListByInstructor returns every class an instructor owns.
func (s *ClassService) ListByInstructor(ctx context.Context, instructorEmail string) ([]model.ClassOffering, error) {
	return nonNil(s.classes.List(ctx, repository.ClassFilter{InstructorEmail: normalizeEmail(instructorEmail)}))
}

// Get returns a single class.
func (s *ClassService) Get(ctx context.Context, id string) (*model.ClassOffering, error) {
	return s.classes.GetByID(ctx, id)
}

// Create adds a pending class owned by the caller.
func (s *ClassService) Create(ctx context.Context, caller string, req model.ClassRequest) (*model.ClassOffering, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	c, err := s.classes.Create(ctx, normalizeEmail(caller), req)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return c, nil
}

// Update edits a class. Instructors may only edit their own; admins may edit any.
func (s *ClassService) Update(ctx context.Context, caller string, callerRole model.Role, id string, req model.ClassRequest) (*model.ClassOffering, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	current, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch callerRole {
	case model.RoleAdmin:
	case model.RoleInstructor:
		if current.InstructorEmail != normalizeEmail(caller) {
			return nil, ErrNotOwner
		}
	case model.RoleStudent, model.RoleUnset:
		return nil, ErrNotOwner
	default:
		return nil, fmt.Errorf("unknown role %q", callerRole)
	}
	return s.classes.Update(ctx, id, req)
}

// SetStatus approves or denies a class.
func (s *ClassService) SetStatus(ctx context.Context, id string, req model.ClassStatusRequest) (*model.ClassOffering, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	current, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := model.ClassStatus(req.Status)
	if !current.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, next)
	}
	return s.classes.UpdateStatus(ctx, id, current.Status, next, strings.TrimSpace(req.Feedback))
}
