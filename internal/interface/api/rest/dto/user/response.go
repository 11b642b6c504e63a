package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID        uuid.UUID `json:"uuid"`
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		Age         int       `json:"age"`
		Department  string    `json:"department,omitempty"`
		Role        string    `json:"role,omitempty"`
		PhoneNumber string    `json:"phoneNumber,omitempty"`
		IsActive    bool      `json:"isActive"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
	Users []User
)
