package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin      = "admin"
	RoleEscritorio = "escritorio"
	RoleProducao   = "producao"
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt, nunca em claro depois de persistir
	Role         string // admin, escritorio, producao
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
