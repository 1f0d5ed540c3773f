package roles

import "time"

// Role is a role row as stored.
type Role struct {
	ID        int64     `json:"roleId"`
	Name      string    `json:"roleName"`
	Key       string    `json:"roleKey"`
	Rank      int       `json:"roleSort"`
	Status    string    `json:"status"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"createTime"`
}

// ListFilters narrows the role listing.
type ListFilters struct {
	RoleID   int64
	Name     string
	Key      string
	Status   string
	PageNum  int
	PageSize int
}
