package models

import (
	"fmt"
	"time"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	DiscordName  *string   `json:"discord_name,omitempty" db:"discord_name"`
	Role         UserRole  `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName - имя, которое показываем в списках менеджеров/владельцев.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	if u.DiscordName != nil && *u.DiscordName != "" {
		return *u.DiscordName
	}
	return fmt.Sprintf("User %d", u.ID)
}

// UserOption - элемент виджета выбора пользователя: {label, value}.
type UserOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
