package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alertmgr/backend/pkg/auth"
	apperrors "github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/utils"
)

const dashboardURL = "https://bi.example.com/dashboards/7?Status=pending&Region=EU"

func startEditing(t *testing.T, store *MockAlertStore, user *auth.UserSession, alert models.Alert) *EditingService {
	t.Helper()
	store.On("GetAlert", mock.Anything, alert.ID).Return(alert, nil).Once()
	svc := NewEditingService(store, zerolog.Nop())
	state, err := svc.Start(context.Background(), user, alert.ID)
	require.NoError(t, err)
	require.False(t, state.Dirty)
	return svc
}

func TestEditingService_StartAndState(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", map[string]string{"Status": "complete"})
	svc := startEditing(t, store, alice, alert)

	state, err := svc.State(alice, "a1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Status": "complete"}, state.Filter)
	assert.Equal(t, map[string]string{"Status": "complete"}, state.InitialFilter)
	assert.Equal(t, "Status=complete", state.SearchParams)

	_, err = svc.State(bob, "a1")
	assert.True(t, apperrors.IsNotFound(err), "sessions are per user")
}

func TestEditingService_Start_AlertMissing(t *testing.T) {
	store := new(MockAlertStore)
	store.On("GetAlert", mock.Anything, "nope").Return(models.Alert{}, apperrors.NewNotFoundError("Alert", "nope"))

	_, err := NewEditingService(store, zerolog.Nop()).Start(context.Background(), alice, "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEditingService_ApplyFiltersAndReset(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", map[string]string{"Status": "complete"})
	svc := startEditing(t, store, alice, alert)

	state, err := svc.ApplyFilters(alice, "a1", dashboardURL)
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.Equal(t, map[string]string{"Status": "pending", "Region": "EU"}, state.Filter)
	assert.Equal(t, "Region=EU&Status=pending", state.SearchParams)

	_, err = svc.ApplyFilters(alice, "a1", "://bad url")
	assert.True(t, apperrors.IsValidation(err))

	state, err = svc.Reset(alice, "a1")
	require.NoError(t, err)
	assert.False(t, state.Dirty)
	assert.Equal(t, map[string]string{"Status": "complete"}, state.Filter)
}

func TestEditingService_Save_RequiresEmail(t *testing.T) {
	store := new(MockAlertStore)
	svc := NewEditingService(store, zerolog.Nop())

	_, err := svc.Save(context.Background(), &auth.UserSession{ID: "u"}, "a1")
	assert.True(t, apperrors.IsValidation(err))
	store.AssertNotCalled(t, "GetAlert", mock.Anything, mock.Anything)
}

func TestEditingService_Save_OwnerCopiesAndUnfollows(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", map[string]string{"Status": "complete"})
	svc := startEditing(t, store, alice, alert)
	_, err := svc.ApplyFilters(alice, "a1", dashboardURL)
	require.NoError(t, err)

	store.On("CreateAlert", mock.Anything, mock.MatchedBy(func(a models.Alert) bool {
		return a.ID == "" &&
			len(a.Destinations) == 1 &&
			a.Destinations[0].EmailAddress == alice.Email &&
			utils.StringOrEmpty(a.AppliedDashboardFilters[0].FilterValue) == "pending"
	})).Return(models.Alert{ID: "a9", OwnerID: alice.ID}, nil)
	store.On("UnfollowAlert", mock.Anything, "a1", alice.ID).Return(nil)

	out, err := svc.Save(context.Background(), alice, "a1")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, out.Copied)
	assert.Equal(t, "a9", out.Alert.ID)
	store.AssertExpectations(t)

	_, err = svc.State(alice, "a1")
	assert.True(t, apperrors.IsNotFound(err), "session ends after copy")
}

func TestEditingService_Save_OwnerUnfollowFailureStillSucceeds(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", nil)
	svc := startEditing(t, store, alice, alert)

	store.On("CreateAlert", mock.Anything, mock.Anything).Return(models.Alert{ID: "a9"}, nil)
	store.On("UnfollowAlert", mock.Anything, "a1", alice.ID).Return(errors.New("db down"))

	out, err := svc.Save(context.Background(), alice, "a1")
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestEditingService_Save_NonOwnerUpdatesInPlace(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", map[string]string{"Status": "complete"})
	svc := startEditing(t, store, bob, alert)
	_, err := svc.ApplyFilters(bob, "a1", "https://bi/dashboards/7?Status=pending")
	require.NoError(t, err)

	saved := alert.Clone()
	saved.AppliedDashboardFilters[0].FilterValue = utils.StringPtr("pending")
	store.On("UpdateAlert", mock.Anything, "a1", mock.MatchedBy(func(a models.Alert) bool {
		return utils.StringOrEmpty(a.AppliedDashboardFilters[0].FilterValue) == "pending" && len(a.Destinations) == 2
	})).Return(saved, nil)

	out, err := svc.Save(context.Background(), bob, "a1")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.False(t, out.Copied)
	store.AssertNotCalled(t, "UnfollowAlert", mock.Anything, mock.Anything, mock.Anything)

	state, err := svc.State(bob, "a1")
	require.NoError(t, err)
	assert.False(t, state.Dirty, "saved filters become the initial filters")
	assert.Equal(t, map[string]string{"Status": "pending"}, state.InitialFilter)
}

func TestEditingService_Save_FailureKeepsDirty(t *testing.T) {
	store := new(MockAlertStore)
	alert := testAlert("a1", alice.ID, "d1", "Sales", map[string]string{"Status": "complete"})
	svc := startEditing(t, store, bob, alert)
	_, err := svc.ApplyFilters(bob, "a1", "https://bi/dashboards/7?Status=pending")
	require.NoError(t, err)

	store.On("UpdateAlert", mock.Anything, "a1", mock.Anything).Return(models.Alert{}, errors.New("conflict"))

	out, err := svc.Save(context.Background(), bob, "a1")
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "conflict", out.Error)

	state, err := svc.State(bob, "a1")
	require.NoError(t, err)
	assert.True(t, state.Dirty)
}

func TestEditingService_Discard(t *testing.T) {
	store := new(MockAlertStore)
	svc := startEditing(t, store, alice, testAlert("a1", alice.ID, "d1", "Sales", nil))

	assert.True(t, svc.Discard(alice, "a1"))
	assert.False(t, svc.Discard(alice, "a1"))
}
