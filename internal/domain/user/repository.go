package user

import (
	"context"
)

// Repository is the record-store port. The backing store is a plain
// key-value store: FindByID is the only point lookup, every filtered
// operation is a full scan with a client-side predicate.
type Repository interface {
	Save(ctx context.Context, u User) (*User, error)
	FindByID(ctx context.Context, uuid UUID) (*User, error)
	FindAll(ctx context.Context) (Users, error)
	Delete(ctx context.Context, uuid UUID) error
	FindByDepartment(ctx context.Context, department string) (Users, error)
	FindByRole(ctx context.Context, role string) (Users, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByNameContaining(ctx context.Context, name string) (Users, error)
	ExistsByID(ctx context.Context, uuid UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}
