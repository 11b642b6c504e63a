package user

type Request struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    *bool  `json:"isActive"`
}
