package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Dosada05/tournament-badges/roster"
)

const (
	formFieldAction     = "_action"
	formFieldManagerIDs = "managerIds"
	formFieldOwnerIDs   = "ownerIds"

	actionManagers = "MANAGERS"
	actionOwners   = "OWNERS"
)

var (
	errUnknownAction     = errors.New("unknown _action")
	errDuplicateManagers = errors.New("managerIds must not contain duplicates")
)

// badgeEditAction - закрытый набор действий формы редактирования бейджа.
type badgeEditAction interface {
	badgeEditAction()
}

type managersAction struct {
	ManagerIDs []int
}

type ownersAction struct {
	// OwnerIDs - плоский список, повтор ID означает количество.
	OwnerIDs []int
}

func (managersAction) badgeEditAction() {}
func (ownersAction) badgeEditAction()   {}

// parseBadgeEditAction разбирает поля формы. Любая ошибка означает 400
// и отсутствие записи в БД.
func parseBadgeEditAction(form url.Values) (badgeEditAction, error) {
	switch action := strings.TrimSpace(form.Get(formFieldAction)); action {
	case actionManagers:
		ids, err := parseIDField(form, formFieldManagerIDs)
		if err != nil {
			return nil, err
		}
		if roster.ContainsDuplicates(ids) {
			return nil, errDuplicateManagers
		}
		return managersAction{ManagerIDs: ids}, nil

	case actionOwners:
		ids, err := parseIDField(form, formFieldOwnerIDs)
		if err != nil {
			return nil, err
		}
		return ownersAction{OwnerIDs: ids}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownAction, action)
	}
}

func parseIDField(form url.Values, field string) ([]int, error) {
	if _, ok := form[field]; !ok {
		return nil, fmt.Errorf("missing field %s", field)
	}
	ids, err := roster.ParseIDList(form.Get(field))
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	return ids, nil
}
