package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
	"github.com/sirupsen/logrus"
)

// IdentityLookup finds an identity by email.
type IdentityLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
}

// RoleCache is a best-effort cache in front of the identity store.
type RoleCache interface {
	Get(ctx context.Context, email string) (model.Role, bool, error)
	Set(ctx context.Context, email string, role model.Role) error
	Forget(ctx context.Context, email string) error
}

// RoleResolver determines a verified subject's role from the identity store.
type RoleResolver struct {
	users IdentityLookup
	cache RoleCache
	log   logrus.FieldLogger
}

// NewRoleResolver constructs a RoleResolver. cache may be nil.
func NewRoleResolver(users IdentityLookup, cache RoleCache, log logrus.FieldLogger) *RoleResolver {
	return &RoleResolver{users: users, cache: cache, log: log}
}

// RoleOf returns the subject's role, or RoleUnset when no identity exists.
// Only store failures produce an error; cache failures fall through to the store.
func (r *RoleResolver) RoleOf(ctx context.Context, email string) (model.Role, error) {
	if r.cache != nil {
		role, ok, err := r.cache.Get(ctx, email)
		switch {
		case err != nil:
			r.log.WithError(err).WithField("email", email).Warn("role cache read failed")
		case ok:
			return role, nil
		}
	}

	role := model.RoleUnset
	u, err := r.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return model.RoleUnset, fmt.Errorf("resolve role: %w", err)
	default:
		role = u.Role
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, email, role); err != nil {
			r.log.WithError(err).WithField("email", email).Warn("role cache write failed")
		}
	}
	return role, nil
}

// Forget drops any cached role for email. Call it after every identity write.
func (r *RoleResolver) Forget(ctx context.Context, email string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Forget(ctx, email); err != nil {
		r.log.WithError(err).WithField("email", email).Warn("role cache invalidation failed")
	}
}
