package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/domain/ports"
	"github.com/alertmgr/backend/pkg/auth"
	apperrors "github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/filterstate"
	"github.com/alertmgr/backend/pkg/models"
)

// EditingState is the client view of an editing session
type EditingState struct {
	AlertID       string            `json:"alert_id"`
	Filter        map[string]string `json:"filter"`
	InitialFilter map[string]string `json:"initial_filter"`
	Dirty         bool              `json:"dirty"`
	SearchParams  string            `json:"search_params"`
}

// SaveOutcome is the result of saving an editing session. Copied is true when
// the filters were saved into a new alert owned by the current user.
type SaveOutcome struct {
	filterstate.SaveResult
	Copied bool `json:"copied"`
}

type sessionKey struct {
	userID  string
	alertID string
}

type editingSession struct {
	mu      sync.Mutex // serializes saves of this session
	alert   models.Alert
	tracker *filterstate.Tracker
}

// EditingService keeps one filter tracker per user and alert while the user
// edits that alert's dashboard filters
type EditingService struct {
	store ports.AlertStore

	mu       sync.Mutex
	sessions map[sessionKey]*editingSession

	logger zerolog.Logger
}

func NewEditingService(store ports.AlertStore, logger zerolog.Logger) *EditingService {
	return &EditingService{
		store:    store,
		sessions: make(map[sessionKey]*editingSession),
		logger:   logger.With().Str("component", "editing_service").Logger(),
	}
}

// Start opens (or restarts) an editing session from the alert's saved filters
func (s *EditingService) Start(ctx context.Context, user *auth.UserSession, alertID string) (EditingState, error) {
	alert, err := s.store.GetAlert(ctx, alertID)
	if err != nil {
		return EditingState{}, err
	}

	tracker := filterstate.NewTracker(filterstate.FromAppliedFilters(alert.AppliedDashboardFilters))
	log := s.logger.With().Str("user_id", user.ID).Str("alert_id", alertID).Logger()
	tracker.Listeners().Register(func(filter map[string]string) {
		log.Debug().Interface("filter", filter).Msg("dashboard filters changed")
	})

	session := &editingSession{alert: alert, tracker: tracker}
	s.mu.Lock()
	s.sessions[sessionKey{user.ID, alertID}] = session
	s.mu.Unlock()

	log.Info().Int("filters", len(alert.AppliedDashboardFilters)).Msg("editing started")
	return stateOf(alertID, tracker.State()), nil
}

func (s *EditingService) session(user *auth.UserSession, alertID string) (*editingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionKey{user.ID, alertID}]
	if !ok {
		return nil, apperrors.NewNotFoundError("Editing session", alertID)
	}
	return session, nil
}

// State returns the current filters of an open session
func (s *EditingService) State(user *auth.UserSession, alertID string) (EditingState, error) {
	session, err := s.session(user, alertID)
	if err != nil {
		return EditingState{}, err
	}
	return stateOf(alertID, session.tracker.State()), nil
}

// ApplyFilters replaces the current filters with those of a dashboard URL
func (s *EditingService) ApplyFilters(user *auth.UserSession, alertID, absoluteURL string) (EditingState, error) {
	session, err := s.session(user, alertID)
	if err != nil {
		return EditingState{}, err
	}
	if err := session.tracker.ApplyExternalChange(absoluteURL); err != nil {
		return EditingState{}, apperrors.NewValidationError("absolute_url", err.Error())
	}
	return stateOf(alertID, session.tracker.State()), nil
}

// Reset restores the filters the session started from
func (s *EditingService) Reset(user *auth.UserSession, alertID string) (EditingState, error) {
	session, err := s.session(user, alertID)
	if err != nil {
		return EditingState{}, err
	}
	session.tracker.Reset()
	return stateOf(alertID, session.tracker.State()), nil
}

// Save persists the session's filters. An owner gets a new alert carrying the
// filters and stops following the original; anyone else updates the alert in
// place. The user's e-mail is required.
func (s *EditingService) Save(ctx context.Context, user *auth.UserSession, alertID string) (SaveOutcome, error) {
	if user.Email == "" {
		return SaveOutcome{}, apperrors.NewValidationError("email", "no email found for current user")
	}
	session, err := s.session(user, alertID)
	if err != nil {
		return SaveOutcome{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	log := s.logger.With().Str("user_id", user.ID).Str("alert_id", alertID).Logger()

	if session.alert.OwnerID == user.ID {
		result := session.tracker.CopyAndSave(ctx, s.store, session.alert, user.Email)
		if !result.Success {
			log.Error().Str("error", result.Error).Msg("failed to copy alert with new filters")
			return SaveOutcome{SaveResult: result, Copied: true}, nil
		}
		if err := s.store.UnfollowAlert(ctx, alertID, user.ID); err != nil {
			log.Error().Err(err).Msg("failed to unfollow original alert")
		}
		log.Info().Str("new_alert_id", result.Alert.ID).Msg("new alert created with new filters")
		s.Discard(user, alertID)
		return SaveOutcome{SaveResult: result, Copied: true}, nil
	}

	result := session.tracker.Save(ctx, s.store, session.alert)
	if !result.Success {
		log.Error().Str("error", result.Error).Msg("failed to save filters")
		return SaveOutcome{SaveResult: result}, nil
	}
	session.alert = *result.Alert
	log.Info().Msg("new filters saved")
	return SaveOutcome{SaveResult: result}, nil
}

// Discard closes a session. It reports whether one was open.
func (s *EditingService) Discard(user *auth.UserSession, alertID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionKey{user.ID, alertID}
	if _, ok := s.sessions[key]; !ok {
		return false
	}
	delete(s.sessions, key)
	return true
}

func stateOf(alertID string, st filterstate.State) EditingState {
	return EditingState{
		AlertID:       alertID,
		Filter:        st.Filter(false),
		InitialFilter: st.Filter(true),
		Dirty:         st.IsDirty(),
		SearchParams:  st.SearchParams().Encode(),
	}
}
