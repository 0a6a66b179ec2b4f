package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/queryfields"
)

type MockAlertStore struct {
	mock.Mock
}

func (m *MockAlertStore) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Alert), args.Error(1)
}

func (m *MockAlertStore) ListAlerts(ctx context.Context, dashboardID string) ([]models.Alert, error) {
	args := m.Called(ctx, dashboardID)
	alerts, _ := args.Get(0).([]models.Alert)
	return alerts, args.Error(1)
}

func (m *MockAlertStore) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	args := m.Called(ctx, alert)
	return args.Get(0).(models.Alert), args.Error(1)
}

func (m *MockAlertStore) UpdateAlert(ctx context.Context, id string, alert models.Alert) (models.Alert, error) {
	args := m.Called(ctx, id, alert)
	return args.Get(0).(models.Alert), args.Error(1)
}

func (m *MockAlertStore) UnfollowAlert(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockBIPlatform struct {
	mock.Mock
}

func (m *MockBIPlatform) GetQuery(ctx context.Context, slug string) (models.Query, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(models.Query), args.Error(1)
}

func (m *MockBIPlatform) GetModelExplore(ctx context.Context, model, explore string) (models.ModelExplore, error) {
	args := m.Called(ctx, model, explore)
	return args.Get(0).(models.ModelExplore), args.Error(1)
}

func (m *MockBIPlatform) RunQuery(ctx context.Context, queryID string) ([]queryfields.ResultRow, error) {
	args := m.Called(ctx, queryID)
	rows, _ := args.Get(0).([]queryfields.ResultRow)
	return rows, args.Error(1)
}

func (m *MockBIPlatform) ListIntegrations(ctx context.Context) ([]models.Integration, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Integration)
	return list, args.Error(1)
}
