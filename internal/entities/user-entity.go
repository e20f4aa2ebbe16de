package entities

import "erp-system/pkg/types"

type User struct {
	ID       uint64 `json:"id"`
	Fio      string `json:"fio"`
	Email    string `json:"email"`
	Password string `json:"-"`
	RoleID   uint64 `json:"role_id"`
	IsActive bool   `json:"is_active"`

	types.BaseEntity
}
