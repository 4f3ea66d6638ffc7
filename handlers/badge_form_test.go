package handlers

import (
	"net/url"
	"testing"

	"github.com/Dosada05/tournament-badges/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBadgeEditAction(t *testing.T) {
	tests := map[string]struct {
		form    url.Values
		want    badgeEditAction
		wantErr error
	}{
		"managers": {
			form: url.Values{"_action": {"MANAGERS"}, "managerIds": {"[1,2,3]"}},
			want: managersAction{ManagerIDs: []int{1, 2, 3}},
		},
		"managers as strings": {
			form: url.Values{"_action": {"MANAGERS"}, "managerIds": {`["4","5"]`}},
			want: managersAction{ManagerIDs: []int{4, 5}},
		},
		"empty managers": {
			form: url.Values{"_action": {"MANAGERS"}, "managerIds": {"[]"}},
			want: managersAction{ManagerIDs: []int{}},
		},
		"owners keep repetition": {
			form: url.Values{"_action": {"OWNERS"}, "ownerIds": {"[7,7,7,9]"}},
			want: ownersAction{OwnerIDs: []int{7, 7, 7, 9}},
		},
		"duplicate managers": {
			form:    url.Values{"_action": {"MANAGERS"}, "managerIds": {"[1,1]"}},
			wantErr: errDuplicateManagers,
		},
		"malformed json": {
			form:    url.Values{"_action": {"MANAGERS"}, "managerIds": {"[1,"}},
			wantErr: roster.ErrInvalidIDList,
		},
		"unknown action": {
			form:    url.Values{"_action": {"DELETE"}},
			wantErr: errUnknownAction,
		},
		"missing action": {
			form:    url.Values{"managerIds": {"[1]"}},
			wantErr: errUnknownAction,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseBadgeEditAction(tc.form)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseBadgeEditAction_MissingField(t *testing.T) {
	_, err := parseBadgeEditAction(url.Values{"_action": {"OWNERS"}})
	assert.ErrorContains(t, err, "missing field ownerIds")
}

type bogusAction struct{}

func (bogusAction) badgeEditAction() {}

func TestBadgeHandler_DispatchUnknownVariantPanics(t *testing.T) {
	h := NewBadgeHandler(nil)
	assert.Panics(t, func() {
		h.dispatch(nil, 1, 1, bogusAction{})
	})
}
