package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID        UUID
		Name        string
		Email       string
		Age         int
		Department  string
		Role        string
		PhoneNumber string

		// nil means "not provided by the caller"; creation defaults it
		// to true, update keeps the stored value.
		IsActive *bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
