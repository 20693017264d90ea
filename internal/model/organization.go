package model

import "time"

type Factory struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Code        string       `json:"code" gorm:"size:20;uniqueIndex;not null"`
	Name        string       `json:"name" gorm:"size:150;not null"`
	Departments []Department `json:"departments,omitempty"`
	Kips        []Kip        `json:"kips,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Department.Code is overloaded: in matrix factories "2GT1" means
// factory 2, section GT, shift 1. See package hierarchy.
type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:30;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	FactoryID uint      `json:"factory_id" gorm:"index;not null"`
	IsKip     bool      `json:"is_kip" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Factory *Factory `json:"factory,omitempty" gorm:"foreignKey:FactoryID"`
}

// Kip is a work shift. The human shift number lives inside Name ("Kíp 2").
type Kip struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	FactoryID uint      `json:"factory_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Factory *Factory `json:"factory,omitempty" gorm:"foreignKey:FactoryID"`
}
