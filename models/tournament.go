package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament представляет турнир (событие, к которому регистрируются команды).
type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// RegistrationOpen - можно ли сейчас создавать команды и вступать в них.
func (t *Tournament) RegistrationOpen() bool {
	return t != nil && t.Status == StatusRegistration
}

// TeamRegistration - шапка регистрации команды для текущего пользователя.
type TeamRegistration struct {
	Tournament *Tournament `json:"tournament"`
	Team       *Team       `json:"team,omitempty"`
	IsOwner    bool        `json:"is_owner"`
	CanJoin    bool        `json:"can_join"`
}
