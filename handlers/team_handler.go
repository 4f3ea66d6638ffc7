package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-badges/services"
	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// CreateTeam godoc
// @Summary Создание команды в турнире
// @Description Текущий пользователь становится капитаном; в ответе код приглашения.
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input createTeamRequest
	// Тело опционально: без имени команда называется по капитану
	if err := readJSON(w, r, &input); err != nil && !isEmptyBody(err) {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), services.CreateTeamInput{
		TournamentID: tournamentID,
		OwnerID:      userID,
		Name:         input.Name,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMyTeam godoc
// @Summary Регистрация текущего пользователя в турнире
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/teams/mine [get]
func (h *TeamHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	reg, err := h.teamService.GetRegistration(r.Context(), tournamentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registration": reg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTeam godoc
// @Summary Удаление команды (только капитан)
// @Tags teams
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, ok := tournamentAndTeamIDs(w, r)
	if !ok {
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), tournamentID, teamID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveTeam godoc
// @Summary Выход из команды
// @Tags teams
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 204
// @Router /tournaments/{tournamentID}/teams/{teamID}/leave [post]
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, ok := tournamentAndTeamIDs(w, r)
	if !ok {
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.teamService.LeaveTeam(r.Context(), tournamentID, teamID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinTeam godoc
// @Summary Вступление в команду по коду приглашения
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param inviteCode path string true "Invite code"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/teams/join/{inviteCode} [post]
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	code := strings.TrimSpace(chi.URLParam(r, "inviteCode"))
	if code == "" {
		badRequestResponse(w, r, errors.New("missing invite code"))
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	team, err := h.teamService.JoinTeam(r.Context(), tournamentID, code, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func tournamentAndTeamIDs(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	return tournamentID, teamID, true
}

func isEmptyBody(err error) bool {
	return err != nil && (errors.Is(err, io.EOF) || err.Error() == "body must not be empty")
}
