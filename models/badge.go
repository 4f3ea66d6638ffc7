package models

import "time"

type Badge struct {
	ID          int       `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Hue         *int      `json:"hue,omitempty" db:"hue"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"-"`

	// Заполняются сервисом при запросе деталей
	Managers []BadgeManager `json:"managers,omitempty" db:"-"`
	Owners   []BadgeOwner   `json:"owners,omitempty" db:"-"`
}

// BadgeManager - пользователь, который может редактировать владельцев бейджа.
type BadgeManager struct {
	BadgeID  int    `json:"badge_id" db:"badge_id"`
	UserID   int    `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"-"`
}

// BadgeOwner - владелец бейджа; Count - сколько раз он его получил (1..100).
type BadgeOwner struct {
	BadgeID  int    `json:"badge_id" db:"badge_id"`
	UserID   int    `json:"user_id" db:"user_id"`
	Count    int    `json:"count" db:"count"`
	Username string `json:"username" db:"-"`
}
