package domain

import "time"

// Roles a user can hold within a region. A user may hold several,
// e.g. a seller who also delivers for other sellers.
const (
	RoleBuyer   = "buyer"
	RoleSeller  = "seller"
	RoleCourier = "courier"
)

// User represents an account scoped to a region.
type User struct {
	ID                string    `json:"id"`
	RegionID          string    `json:"-"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FirstName         string    `json:"firstName,omitempty"`
	LastName          string    `json:"lastName,omitempty"`
	Address           string    `json:"address,omitempty"`
	Roles             []string  `json:"roles"`
	CooperativeMember bool      `json:"cooperativeMember"`
	CreatedAt         time.Time `json:"createdAt"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
