package services

import "github.com/Dosada05/tournament-badges/models"

// CanEditBadgeManagers - менеджеров бейджа назначает только администратор.
func CanEditBadgeManagers(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// CanEditBadgeOwners - владельцев редактирует администратор или любой
// текущий менеджер этого бейджа.
func CanEditBadgeOwners(user *models.User, managers []models.BadgeManager) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	for _, m := range managers {
		if m.UserID == user.ID {
			return true
		}
	}
	return false
}
