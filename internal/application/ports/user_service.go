package ports

import (
	"context"

	"user-directory-api/internal/domain/user"
)

type UserService interface {
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	DeleteUser(ctx context.Context, uuid user.UUID) (bool, error)
	FindUsers(ctx context.Context) (user.Users, error)
	FindUsersByDepartment(ctx context.Context, department string) (user.Users, error)
	FindUsersByRole(ctx context.Context, role string) (user.Users, error)
	FindActiveUsers(ctx context.Context) (user.Users, error)
	SearchUsersByName(ctx context.Context, name string) (user.Users, error)
	CountUsers(ctx context.Context) (int64, error)
	ActivateUser(ctx context.Context, uuid user.UUID) (*user.User, error)
	DeactivateUser(ctx context.Context, uuid user.UUID) (*user.User, error)
}
