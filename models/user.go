package models

// UserRole selects which dashboard an actor is using.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RolePorter   UserRole = "porter"
)

// User is the mock campus identity served to clients. There is no real account system.
type User struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Role  UserRole `json:"role"`
}
