package services

import "fmt"

// EventPublisher рассылает события подписчикам комнаты (websocket hub).
type EventPublisher interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Event - сообщение, которое получают клиенты; по нему они перезапрашивают данные.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const (
	EventBadgeUpdated = "BADGE_UPDATED"
	EventTeamUpdated  = "TEAM_UPDATED"
)

func BadgeRoom(badgeID int) string {
	return fmt.Sprintf("badge_%d", badgeID)
}

func TournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

func publish(p EventPublisher, room, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	p.BroadcastToRoom(room, Event{Type: eventType, Payload: payload, RoomID: room})
}
