package entity

import "time"

// UserStatus is the lifecycle state of an account.
type UserStatus int16

const (
	// UserStatusUnknown means the stored value is not one we recognize.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive means the account may log in and reset its password.
	UserStatusActive UserStatus = 1

	// UserStatusBanned means the account is blocked by an operator.
	UserStatusBanned UserStatus = 2

	// UserStatusInactive means the account was closed by its owner.
	UserStatusInactive UserStatus = 3
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBanned:
		return "Banned"
	case UserStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// Ensure folds unrecognized values into UserStatusUnknown.
func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusActive, UserStatusBanned, UserStatusInactive:
		return us
	default:
		return UserStatusUnknown
	}
}

// User is an account without its credential.
type User struct {
	ID        int64
	Email     string
	FullName  string
	Status    UserStatus
	CreatedAt time.Time
}

// NewUser holds the fields needed to create an account.
type NewUser struct {
	ID       int64
	Email    string
	FullName string
	Status   UserStatus
}

// UserLoginInfo pairs an account with its stored password hash.
type UserLoginInfo struct {
	ID       int64
	Email    string
	Status   UserStatus
	Password string
}
