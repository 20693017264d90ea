package model

import "time"

type Employee struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Code         string `json:"code" gorm:"size:30;uniqueIndex;not null"`
	FullName     string `json:"full_name" gorm:"size:150;not null"`
	Birthday     string `json:"birthday" gorm:"size:10"`
	Gender       string `json:"gender" gorm:"size:10"`
	Address      string `json:"address"`
	Phone        string `json:"phone" gorm:"size:20"`
	Position     string `json:"position" gorm:"size:100"`
	DepartmentID uint   `json:"department_id" gorm:"index;not null"`
	KipID        *uint  `json:"kip_id" gorm:"index"`
	StartDate    string `json:"start_date" gorm:"size:10"`
	IDCardNumber string `json:"id_card_number" gorm:"size:20"`
	IDCardDate   string `json:"id_card_date" gorm:"size:10"`
	IDCardPlace  string `json:"id_card_place"`
	BankAccount  string `json:"bank_account" gorm:"size:30"`
	TaxCode      string `json:"tax_code" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Kip        *Kip        `json:"kip,omitempty" gorm:"foreignKey:KipID"`
}
