package user

import (
	"errors"

	"github.com/google/uuid"

	"user-directory-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:        uDomain.UUID,
		Name:        uDomain.Name,
		Email:       uDomain.Email,
		Age:         uDomain.Age,
		Department:  uDomain.Department,
		Role:        uDomain.Role,
		PhoneNumber: uDomain.PhoneNumber,
		IsActive:    uDomain.Active(),
		CreatedAt:   uDomain.CreatedAt,
		UpdatedAt:   uDomain.UpdatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) (user.User, error) {
	var userUUID uuid.UUID
	if uRequest.UUID != "" {
		parsed, err := uuid.Parse(uRequest.UUID)
		if err != nil {
			return user.User{}, errors.New("uuid must be a valid UUID")
		}
		userUUID = parsed
	}

	var u = user.User{
		UUID:        userUUID,
		Name:        uRequest.Name,
		Email:       uRequest.Email,
		Age:         uRequest.Age,
		Department:  uRequest.Department,
		Role:        uRequest.Role,
		PhoneNumber: uRequest.PhoneNumber,
		IsActive:    uRequest.IsActive,
	}

	return u, nil
}
