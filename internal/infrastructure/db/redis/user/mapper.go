package user

import (
	domain "user-directory-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	active := model.IsActive
	var u = &domain.User{
		UUID:        model.UUID,
		Name:        model.Name,
		Email:       model.Email,
		Age:         model.Age,
		Department:  model.Department,
		Role:        model.Role,
		PhoneNumber: model.PhoneNumber,
		IsActive:    &active,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func toDBModel(uDomain domain.User) *User {
	var u = &User{
		UUID:        uDomain.UUID,
		Name:        uDomain.Name,
		Email:       uDomain.Email,
		Age:         uDomain.Age,
		Department:  uDomain.Department,
		Role:        uDomain.Role,
		PhoneNumber: uDomain.PhoneNumber,
		IsActive:    uDomain.Active(),

		CreatedAt: uDomain.CreatedAt,
		UpdatedAt: uDomain.UpdatedAt,
	}

	return u
}
