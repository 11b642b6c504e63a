package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/mq"
	"user-directory-api/internal/interface/api/rest/dto/user"
)

// UserService owns the business rules: validation, defaulting and the
// timestamp/activity bookkeeping around repository calls. Absence is a
// normal outcome here, lookups report it as (nil, nil).
type UserService struct {
	userRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := us.validateUserForCreation(ctx, u); err != nil {
		return nil, err
	}

	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if u.IsActive == nil {
		active := true
		u.IsActive = &active
	}

	uRet, err := us.userRepository.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	us.publishEvent(http.MethodPost, uRet)
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

func (us *UserService) FindUserByID(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	if userUUID == uuid.Nil {
		return nil, NewValidationError("user uuid is required")
	}

	return us.userRepository.FindByID(ctx, userUUID)
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.UUID == uuid.Nil {
		return nil, NewValidationError("user uuid is required for update")
	}

	existing, err := us.userRepository.FindByID(ctx, u.UUID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	// creation time survives every update
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	if u.IsActive == nil {
		u.IsActive = existing.IsActive
	}

	uRet, err := us.userRepository.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	us.publishEvent(http.MethodPut, uRet)
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, userUUID domain.UUID) (bool, error) {
	if userUUID == uuid.Nil {
		return false, NewValidationError("user uuid is required")
	}

	existing, err := us.userRepository.FindByID(ctx, userUUID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err = us.userRepository.Delete(ctx, userUUID); err != nil {
		return false, err
	}

	us.publishEvent(http.MethodDelete, existing)
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return true, nil
}

func (us *UserService) FindUsers(ctx context.Context) (domain.Users, error) {
	return us.userRepository.FindAll(ctx)
}

func (us *UserService) FindUsersByDepartment(ctx context.Context, department string) (domain.Users, error) {
	if strings.TrimSpace(department) == "" {
		return nil, NewValidationError("department is required")
	}

	return us.userRepository.FindByDepartment(ctx, department)
}

func (us *UserService) FindUsersByRole(ctx context.Context, role string) (domain.Users, error) {
	if strings.TrimSpace(role) == "" {
		return nil, NewValidationError("role is required")
	}

	return us.userRepository.FindByRole(ctx, role)
}

func (us *UserService) FindActiveUsers(ctx context.Context) (domain.Users, error) {
	all, err := us.userRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var active domain.Users
	for _, u := range all {
		if u.Active() {
			active = append(active, u)
		}
	}

	return active, nil
}

func (us *UserService) SearchUsersByName(ctx context.Context, name string) (domain.Users, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name is required")
	}

	return us.userRepository.FindByNameContaining(ctx, name)
}

func (us *UserService) CountUsers(ctx context.Context) (int64, error) {
	return us.userRepository.Count(ctx)
}

func (us *UserService) ActivateUser(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	return us.setActive(ctx, userUUID, true, "user_activated_total")
}

func (us *UserService) DeactivateUser(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	return us.setActive(ctx, userUUID, false, "user_deactivated_total")
}

func (us *UserService) setActive(ctx context.Context, userUUID domain.UUID, active bool, counter string) (*domain.User, error) {
	if userUUID == uuid.Nil {
		return nil, NewValidationError("user uuid is required")
	}

	u, err := us.userRepository.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	u.IsActive = &active
	u.UpdatedAt = time.Now().UTC()

	uRet, err := us.userRepository.Save(ctx, *u)
	if err != nil {
		return nil, err
	}

	us.publishEvent(http.MethodPut, uRet)
	us.mCounter.WithLabelValues(counter).Inc()

	return uRet, nil
}

func (us *UserService) validateUserForCreation(ctx context.Context, u domain.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("user name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("user email is required")
	}
	if u.Age < 18 {
		return NewValidationError("user age must be at least 18")
	}

	// O(n) duplicate check, the store has no unique constraint
	existing, err := us.userRepository.FindByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return NewValidationError("user with this email already exists")
	}

	return nil
}

func (us *UserService) publishEvent(method string, u *domain.User) {
	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Method:  method,
		UserID:  u.UUID.String(),
		Payload: user.ToResponseUser(*u),
	}
}
