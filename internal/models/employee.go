package models

import "time"

type Employee struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(200);not null;index"`
	SupervisorID *uint      `gorm:"index"`
	Supervisor   *Employee  `gorm:"foreignKey:SupervisorID;references:ID;constraint:OnDelete:RESTRICT"`
	Subordinates []Employee `gorm:"foreignKey:SupervisorID;references:ID"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}
