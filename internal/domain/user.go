package domain

import "time"

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleReceptionist UserRole = "receptionist"
	RoleManager      UserRole = "manager"
	RoleAdmin        UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleReceptionist, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role has elevated privilege over other users' records.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleReceptionist
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"size:100"`
	LastName     string    `json:"last_name" gorm:"size:100"`
	PhoneNumber  string    `json:"phone_number,omitempty" gorm:"size:32"`
	Role         UserRole  `json:"role" gorm:"size:16;not null;index"`
	Enabled      bool      `json:"enabled" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
