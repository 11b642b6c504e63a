package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-directory-api/config"
	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/mq"
)

type FakeUserRepo struct {
	SaveFunc                 func(ctx context.Context, u domain.User) (*domain.User, error)
	FindByIDFunc             func(ctx context.Context, uuid domain.UUID) (*domain.User, error)
	FindAllFunc              func(ctx context.Context) (domain.Users, error)
	DeleteFunc               func(ctx context.Context, uuid domain.UUID) error
	FindByDepartmentFunc     func(ctx context.Context, department string) (domain.Users, error)
	FindByRoleFunc           func(ctx context.Context, role string) (domain.Users, error)
	FindByEmailFunc          func(ctx context.Context, email string) (*domain.User, error)
	FindByNameContainingFunc func(ctx context.Context, name string) (domain.Users, error)
	ExistsByIDFunc           func(ctx context.Context, uuid domain.UUID) (bool, error)
	CountFunc                func(ctx context.Context) (int64, error)
}

func (f *FakeUserRepo) Save(ctx context.Context, u domain.User) (*domain.User, error) {
	if f.SaveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SaveFunc(ctx, u)
}
func (f *FakeUserRepo) FindByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	if f.FindByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByIDFunc(ctx, id)
}
func (f *FakeUserRepo) FindAll(ctx context.Context) (domain.Users, error) {
	if f.FindAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindAllFunc(ctx)
}
func (f *FakeUserRepo) Delete(ctx context.Context, id domain.UUID) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, id)
}
func (f *FakeUserRepo) FindByDepartment(ctx context.Context, department string) (domain.Users, error) {
	if f.FindByDepartmentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByDepartmentFunc(ctx, department)
}
func (f *FakeUserRepo) FindByRole(ctx context.Context, role string) (domain.Users, error) {
	if f.FindByRoleFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByRoleFunc(ctx, role)
}
func (f *FakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserRepo) FindByNameContaining(ctx context.Context, name string) (domain.Users, error) {
	if f.FindByNameContainingFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByNameContainingFunc(ctx, name)
}
func (f *FakeUserRepo) ExistsByID(ctx context.Context, id domain.UUID) (bool, error) {
	if f.ExistsByIDFunc == nil {
		return false, errors.New("not used")
	}
	return f.ExistsByIDFunc(ctx, id)
}
func (f *FakeUserRepo) Count(ctx context.Context) (int64, error) {
	if f.CountFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountFunc(ctx)
}

// setupService wires the service with a fake repository and a real MQ
// instance that is never connected: publishEvent only touches the
// buffered input channel.
func setupService(t *testing.T, repo domain.Repository) (ports.UserService, *mq.RabbitMQ) {
	t.Helper()

	rbMQ := mq.New(config.MQ{}, zap.NewNop())
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)

	return NewUserService(repo, rbMQ, counter), rbMQ
}

func validNewUser() domain.User {
	return domain.User{
		Name:        "John Doe",
		Email:       "john@x.com",
		Age:         30,
		Department:  "Engineering",
		Role:        "developer",
		PhoneNumber: "+33612345678",
	}
}

func boolPtr(b bool) *bool { return &b }

func TestUserService_CreateUser(t *testing.T) {
	noEmailMatch := func(ctx context.Context, email string) (*domain.User, error) {
		return nil, nil
	}
	echoSave := func(ctx context.Context, u domain.User) (*domain.User, error) {
		return &u, nil
	}

	tests := []struct {
		name     string
		input    domain.User
		repo     *FakeUserRepo
		wantVErr bool
		check    func(t *testing.T, got *domain.User)
	}{
		{
			name:  "valid user gets uuid, timestamps and active default",
			input: validNewUser(),
			repo: &FakeUserRepo{
				FindByEmailFunc: noEmailMatch,
				SaveFunc:        echoSave,
			},
			check: func(t *testing.T, got *domain.User) {
				assert.NotEqual(t, uuid.Nil, got.UUID)
				assert.Equal(t, got.CreatedAt, got.UpdatedAt)
				require.NotNil(t, got.IsActive)
				assert.True(t, *got.IsActive)
			},
		},
		{
			name: "explicit inactive flag survives defaulting",
			input: func() domain.User {
				u := validNewUser()
				u.IsActive = boolPtr(false)
				return u
			}(),
			repo: &FakeUserRepo{
				FindByEmailFunc: noEmailMatch,
				SaveFunc:        echoSave,
			},
			check: func(t *testing.T, got *domain.User) {
				require.NotNil(t, got.IsActive)
				assert.False(t, *got.IsActive)
			},
		},
		{
			name: "client supplied uuid is kept",
			input: func() domain.User {
				u := validNewUser()
				u.UUID = uuid.MustParse("11111111-2222-3333-4444-555555555555")
				return u
			}(),
			repo: &FakeUserRepo{
				FindByEmailFunc: noEmailMatch,
				SaveFunc:        echoSave,
			},
			check: func(t *testing.T, got *domain.User) {
				assert.Equal(t, "11111111-2222-3333-4444-555555555555", got.UUID.String())
			},
		},
		{
			name: "empty name fails without touching persistence",
			input: func() domain.User {
				u := validNewUser()
				u.Name = "  "
				return u
			}(),
			repo:     &FakeUserRepo{},
			wantVErr: true,
		},
		{
			name: "empty email fails without touching persistence",
			input: func() domain.User {
				u := validNewUser()
				u.Email = ""
				return u
			}(),
			repo:     &FakeUserRepo{},
			wantVErr: true,
		},
		{
			name: "underage fails without touching persistence",
			input: func() domain.User {
				u := validNewUser()
				u.Age = 17
				return u
			}(),
			repo:     &FakeUserRepo{},
			wantVErr: true,
		},
		{
			name:  "duplicate email fails without saving",
			input: validNewUser(),
			repo: &FakeUserRepo{
				FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
					u := validNewUser()
					u.UUID = uuid.New()
					return &u, nil
				},
			},
			wantVErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, rbMQ := setupService(t, tt.repo)

			got, err := svc.CreateUser(context.Background(), tt.input)

			if tt.wantVErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Nil(t, got)
				assert.Empty(t, rbMQ.GetInputChan())
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)

			require.Len(t, rbMQ.GetInputChan(), 1)
			e := <-rbMQ.GetInputChan()
			assert.Equal(t, http.MethodPost, e.Method)
			assert.Equal(t, got.UUID.String(), e.UserID)
		})
	}
}

func TestUserService_FindUserByID(t *testing.T) {
	known := uuid.New()

	svc, _ := setupService(t, &FakeUserRepo{
		FindByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
			if id == known {
				u := validNewUser()
				u.UUID = known
				return &u, nil
			}
			return nil, nil
		},
	})

	t.Run("nil uuid is a validation error", func(t *testing.T) {
		_, err := svc.FindUserByID(context.Background(), uuid.Nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("absent uuid is not an error", func(t *testing.T) {
		got, err := svc.FindUserByID(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("known uuid is returned", func(t *testing.T) {
		got, err := svc.FindUserByID(context.Background(), known)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, known, got.UUID)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	created := time.Now().UTC().Add(-24 * time.Hour)
	existingID := uuid.New()
	existing := func() *domain.User {
		u := validNewUser()
		u.UUID = existingID
		u.IsActive = boolPtr(false)
		u.CreatedAt = created
		u.UpdatedAt = created
		return &u
	}

	repoWith := func(saved **domain.User) *FakeUserRepo {
		return &FakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
				if id == existingID {
					return existing(), nil
				}
				return nil, nil
			},
			SaveFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
				if saved != nil {
					*saved = &u
				}
				return &u, nil
			},
		}
	}

	t.Run("nil uuid is a validation error", func(t *testing.T) {
		svc, _ := setupService(t, &FakeUserRepo{})
		_, err := svc.UpdateUser(context.Background(), validNewUser())
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("absent user returns nil without saving", func(t *testing.T) {
		svc, rbMQ := setupService(t, repoWith(nil))
		u := validNewUser()
		u.UUID = uuid.New()
		got, err := svc.UpdateUser(context.Background(), u)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Empty(t, rbMQ.GetInputChan())
	})

	t.Run("createdAt is preserved and updatedAt advances", func(t *testing.T) {
		var saved *domain.User
		svc, _ := setupService(t, repoWith(&saved))

		u := validNewUser()
		u.UUID = existingID
		u.Name = "John Q. Doe"
		got, err := svc.UpdateUser(context.Background(), u)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, created, got.CreatedAt)
		assert.True(t, !got.UpdatedAt.Before(created))
		assert.Equal(t, "John Q. Doe", saved.Name)
	})

	t.Run("unset isActive keeps the stored value", func(t *testing.T) {
		svc, _ := setupService(t, repoWith(nil))

		u := validNewUser()
		u.UUID = existingID
		got, err := svc.UpdateUser(context.Background(), u)
		require.NoError(t, err)
		require.NotNil(t, got.IsActive)
		assert.False(t, *got.IsActive)
	})

	t.Run("explicit isActive wins", func(t *testing.T) {
		svc, _ := setupService(t, repoWith(nil))

		u := validNewUser()
		u.UUID = existingID
		u.IsActive = boolPtr(true)
		got, err := svc.UpdateUser(context.Background(), u)
		require.NoError(t, err)
		require.NotNil(t, got.IsActive)
		assert.True(t, *got.IsActive)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	existingID := uuid.New()
	deleted := false

	svc, rbMQ := setupService(t, &FakeUserRepo{
		FindByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
			if id == existingID && !deleted {
				u := validNewUser()
				u.UUID = existingID
				return &u, nil
			}
			return nil, nil
		},
		DeleteFunc: func(ctx context.Context, id domain.UUID) error {
			deleted = true
			return nil
		},
	})

	t.Run("nil uuid is a validation error", func(t *testing.T) {
		_, err := svc.DeleteUser(context.Background(), uuid.Nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("absent target is a no-op", func(t *testing.T) {
		ok, err := svc.DeleteUser(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, deleted)
	})

	t.Run("existing target is removed once", func(t *testing.T) {
		ok, err := svc.DeleteUser(context.Background(), existingID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, deleted)
		require.Len(t, rbMQ.GetInputChan(), 1)
		e := <-rbMQ.GetInputChan()
		assert.Equal(t, http.MethodDelete, e.Method)

		// second delete of the same uuid
		ok, err = svc.DeleteUser(context.Background(), existingID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserService_FilteredFinders(t *testing.T) {
	svc, _ := setupService(t, &FakeUserRepo{
		FindByDepartmentFunc: func(ctx context.Context, department string) (domain.Users, error) {
			return domain.Users{}, nil
		},
		FindByRoleFunc: func(ctx context.Context, role string) (domain.Users, error) {
			return domain.Users{}, nil
		},
		FindByNameContainingFunc: func(ctx context.Context, name string) (domain.Users, error) {
			return domain.Users{}, nil
		},
	})

	tests := []struct {
		name string
		call func(v string) (domain.Users, error)
	}{
		{"department", func(v string) (domain.Users, error) {
			return svc.FindUsersByDepartment(context.Background(), v)
		}},
		{"role", func(v string) (domain.Users, error) {
			return svc.FindUsersByRole(context.Background(), v)
		}},
		{"name search", func(v string) (domain.Users, error) {
			return svc.SearchUsersByName(context.Background(), v)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name+" rejects empty filter", func(t *testing.T) {
			_, err := tt.call("  ")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
		t.Run(tt.name+" passes non-empty filter through", func(t *testing.T) {
			_, err := tt.call("x")
			require.NoError(t, err)
		})
	}
}

func TestUserService_FindActiveUsers(t *testing.T) {
	mkUser := func(active bool) *domain.User {
		u := validNewUser()
		u.UUID = uuid.New()
		u.IsActive = boolPtr(active)
		return &u
	}
	all := domain.Users{mkUser(true), mkUser(false), mkUser(true), mkUser(false)}

	svc, _ := setupService(t, &FakeUserRepo{
		FindAllFunc: func(ctx context.Context) (domain.Users, error) {
			return all, nil
		},
	})

	active, err := svc.FindActiveUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, u := range active {
		assert.True(t, u.Active())
	}
}

func TestUserService_ActivateDeactivate(t *testing.T) {
	id := uuid.New()
	state := validNewUser()
	state.UUID = id
	state.IsActive = boolPtr(true)
	state.UpdatedAt = time.Now().UTC().Add(-time.Hour)

	svc, rbMQ := setupService(t, &FakeUserRepo{
		FindByIDFunc: func(ctx context.Context, uid domain.UUID) (*domain.User, error) {
			if uid == id {
				cp := state
				return &cp, nil
			}
			return nil, nil
		},
		SaveFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
			state = u
			return &u, nil
		},
	})

	t.Run("absent user returns nil", func(t *testing.T) {
		got, err := svc.DeactivateUser(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deactivate then activate restores the flag", func(t *testing.T) {
		before := state.UpdatedAt

		got, err := svc.DeactivateUser(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got.IsActive)
		assert.False(t, *got.IsActive)
		assert.True(t, !got.UpdatedAt.Before(before))

		mid := got.UpdatedAt
		got, err = svc.ActivateUser(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got.IsActive)
		assert.True(t, *got.IsActive)
		assert.True(t, !got.UpdatedAt.Before(mid))

		assert.Len(t, rbMQ.GetInputChan(), 2)
	})
}

func TestUserService_CountUsers(t *testing.T) {
	svc, _ := setupService(t, &FakeUserRepo{
		CountFunc: func(ctx context.Context) (int64, error) { return 7, nil },
	})

	n, err := svc.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
