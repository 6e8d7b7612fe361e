package repository

import (
	"context"

	"github.com/frizzly/api/pkg/models"
)

const UsersCollection = "users"

type UserRepository struct {
	store DocumentStore
}

func NewUserRepository(store DocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns ErrNotFound when no profile exists for userID.
func (r *UserRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, UsersCollection, userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create writes the profile under its userId; the store assigns "createdAt".
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.Set(ctx, UsersCollection, user.UserID, user, "createdAt")
}
