package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-badges/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// GetMe godoc
// @Summary Текущий пользователь
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SearchUsers godoc
// @Summary Поиск пользователей для виджета выбора
// @Description Возвращает массив {label, value}, value - ID пользователя строкой.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param q query string true "Query"
// @Success 200 {array} models.UserOption
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	options, err := h.userService.SearchUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, options, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
