package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/roster"
	"github.com/Dosada05/tournament-badges/services"
)

const (
	maxFormBytes  = 1 << 20
	maxImageBytes = 5 << 20
)

type BadgeHandler struct {
	badgeService services.BadgeService
}

func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// ListBadges godoc
// @Summary Список бейджей
// @Tags badges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /badges [get]
func (h *BadgeHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badgeService.ListBadges(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"badges": badges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListManagedBadges godoc
// @Summary Бейджи, которыми управляет текущий пользователь
// @Tags badges
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /badges/managed [get]
func (h *BadgeHandler) ListManagedBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	badges, err := h.badgeService.ListManagedBadges(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"badges": badges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBadge godoc
// @Summary Бейдж с менеджерами и владельцами
// @Tags badges
// @Produce json
// @Param badgeID path int true "Badge ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /badges/{badgeID} [get]
func (h *BadgeHandler) GetBadge(w http.ResponseWriter, r *http.Request) {
	badgeID, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	badge, err := h.badgeService.GetBadge(r.Context(), badgeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"badge": badge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EditBadge godoc
// @Summary Замена менеджеров или владельцев бейджа
// @Description _action=MANAGERS + managerIds (JSON массив уникальных ID) или _action=OWNERS + ownerIds (повтор ID = количество)
// @Tags badges
// @Security BearerAuth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param badgeID path int true "Badge ID"
// @Param _action formData string true "MANAGERS | OWNERS"
// @Param managerIds formData string false "JSON array"
// @Param ownerIds formData string false "JSON array"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /badges/{badgeID}/edit [post]
func (h *BadgeHandler) EditBadge(w http.ResponseWriter, r *http.Request) {
	badgeID, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := parseForm(w, r); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	action, err := parseBadgeEditAction(r.PostForm)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	badge, err := h.dispatch(r, userID, badgeID, action)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"badge": badge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BadgeHandler) dispatch(r *http.Request, userID, badgeID int, action badgeEditAction) (*models.Badge, error) {
	switch a := action.(type) {
	case managersAction:
		return h.badgeService.EditManagers(r.Context(), userID, badgeID, a.ManagerIDs)
	case ownersAction:
		return h.badgeService.EditOwners(r.Context(), userID, badgeID, a.OwnerIDs)
	default:
		panic(fmt.Sprintf("unhandled badge edit action %T", action))
	}
}

type previewRequest struct {
	ManagerIDs []int `json:"managerIds"`
	OwnerIDs   []int `json:"ownerIds"`
}

// PreviewChanges godoc
// @Summary Подсчет несохраненных изменений черновика
// @Tags badges
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param badgeID path int true "Badge ID"
// @Success 200 {object} map[string]interface{}
// @Router /badges/{badgeID}/preview [post]
func (h *BadgeHandler) PreviewChanges(w http.ResponseWriter, r *http.Request) {
	badgeID, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input previewRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draft := roster.Draft{
		Managers: make([]roster.Assignee, 0, len(input.ManagerIDs)),
		Owners:   roster.DecodeOwners(input.OwnerIDs),
	}
	for _, id := range input.ManagerIDs {
		draft.Managers = append(draft.Managers, roster.Assignee{ID: id})
	}

	summary, err := h.badgeService.PreviewChanges(r.Context(), badgeID, draft)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadImage godoc
// @Summary Загрузка картинки бейджа
// @Tags badges
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param badgeID path int true "Badge ID"
// @Param image formData file true "Image"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /badges/{badgeID}/image [post]
func (h *BadgeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	badgeID, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequestResponse(w, r, errors.New("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		badRequestResponse(w, r, fmt.Errorf("image must not be larger than %d bytes", maxImageBytes))
		return
	}

	// Content-Type из заголовка part'а ненадежен, определяем по содержимому
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		badRequestResponse(w, r, fmt.Errorf("failed to read image: %w", err))
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	var image io.Reader = io.MultiReader(bytes.NewReader(head), file)
	if strings.HasPrefix(contentType, "text/") {
		// svg DetectContentType видит как text/xml или text/plain, проверяем сам документ
		data, err := io.ReadAll(image)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("failed to read image: %w", err))
			return
		}
		if err := checkSVG(data); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		contentType = "image/svg+xml"
		image = bytes.NewReader(data)
	}

	badge, err := h.badgeService.UploadImage(r.Context(), userID, badgeID, contentType, image)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"badge": badge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// parseForm принимает как urlencoded, так и multipart тела.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	err := r.ParseMultipartForm(maxFormBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("invalid form body: %w", err)
	}
	return nil
}
