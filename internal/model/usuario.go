package model

import "time"

// Usuario stores system operators with role-based access.
// Rol: "vendedor" | "admin"
type Usuario struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Username      string    `gorm:"column:username;uniqueIndex;not null"`
	Nombre        string    `gorm:"column:nombre;not null"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Rol           string    `gorm:"column:rol;not null"`
	Activo        bool      `gorm:"column:activo;not null;default:true"`
	FechaCreacion time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }
