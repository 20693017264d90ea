package model

import "time"

type User struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	Username           string       `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Password           string       `json:"-" gorm:"not null"`
	FullName           string       `json:"full_name" gorm:"size:150"`
	Role               Role         `json:"role" gorm:"size:20;not null"`
	ManagedDepartments []Department `json:"managed_departments" gorm:"many2many:user_managed_departments;"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (u *User) ManagedDeptIDs() []uint {
	ids := make([]uint, 0, len(u.ManagedDepartments))
	for _, d := range u.ManagedDepartments {
		ids = append(ids, d.ID)
	}
	return ids
}

func (u *User) Actor() *Actor {
	return &Actor{UserID: u.ID, Username: u.Username, Role: u.Role, ManagedDeptIDs: u.ManagedDeptIDs()}
}
