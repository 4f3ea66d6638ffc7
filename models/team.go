package models

import "time"

// MaxTeamMembers - максимальный размер команды в турнире.
const MaxTeamMembers = 4

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	InviteCode   string    `json:"invite_code,omitempty" db:"invite_code"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Members []TeamMember `json:"members,omitempty" db:"-"`
}

type TeamMember struct {
	TeamID    int       `json:"team_id" db:"team_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	IsOwner   bool      `json:"is_owner" db:"is_owner"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Username string `json:"username" db:"-"`
}

// Owner возвращает капитана (создателя) команды, если он загружен.
func (t *Team) Owner() *TeamMember {
	for i := range t.Members {
		if t.Members[i].IsOwner {
			return &t.Members[i]
		}
	}
	return nil
}

// HasMember проверяет, состоит ли пользователь в команде.
func (t *Team) HasMember(userID int) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
