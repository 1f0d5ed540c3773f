package users

import "time"

// User is a subject account. The core reads accounts but never mutates
// them; lifecycle belongs to the user-management collaborator.
type User struct {
	ID           int64
	Username     string
	Nickname     string
	PasswordHash string
	Email        string
	Phone        string
	Avatar       string
	Remark       string
	Status       string
	CreatedAt    time.Time
}

// Info is the profile projection returned to an authenticated subject.
type Info struct {
	Name     string `json:"name"`
	Nickname string `json:"nickName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Remark   string `json:"remark"`
	Avatar   string `json:"headImg"`
	LoginIP  string `json:"loginIp,omitempty"`
}

// Account status and soft-delete markers, canonical across the schema.
const (
	StatusNormal   = "0"
	StatusDisabled = "1"

	FlagExists  = "0"
	FlagDeleted = "2"
)
