package user

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Status is platform_users.user_status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// Verification statuses of a partner profile.
const (
	VerificationNotSubmitted = "NOT_SUBMITTED"
	VerificationPending      = "PENDING"
	VerificationApproved     = "APPROVED"
	VerificationRejected     = "REJECTED"
)

// User is a partner or admin account (platform_users).
type User struct {
	ID                 uuid.UUID  `db:"id" json:"userId"`
	Phone              string     `db:"phone" json:"phone"`
	Email              *string    `db:"email" json:"email,omitempty"`
	FirstName          string     `db:"first_name" json:"firstName"`
	LastName           string     `db:"last_name" json:"lastName"`
	NameInitial        string     `db:"name_initial" json:"nameInitial"`
	Role               string     `db:"role" json:"role"`
	Status             Status     `db:"user_status" json:"userStatus"`
	ProfileCompleted   bool       `db:"profile_completed" json:"profileCompleted"`
	VerificationStatus string     `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string    `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`
	LastLoginAt        *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// IsSuspended reports whether the account may not sign in.
func (u *User) IsSuspended() bool {
	return u.Status == StatusSuspended
}

// Profile is the editable part of a user.
type Profile struct {
	FirstName string
	LastName  string
	Email     *string
}

// Filter narrows the admin user list.
type Filter struct {
	Status string
	Search string
}

// Initials derives name_initial: the first two letters of a single word,
// otherwise the first letter of each of the first two words. Upper case.
func Initials(firstName, lastName string) string {
	words := strings.FieldsFunc(firstName+" "+lastName, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	switch len(words) {
	case 0:
		return ""
	case 1:
		r := []rune(words[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}
	return strings.ToUpper(string([]rune(words[0])[0]) + string([]rune(words[1])[0]))
}
