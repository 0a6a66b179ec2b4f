package ports

import (
	"context"

	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/queryfields"
)

// BIPlatform is the subset of the BI platform API the alert manager uses.
// RunQuery makes every BIPlatform a queryfields.QueryRunner.
type BIPlatform interface {
	GetQuery(ctx context.Context, slug string) (models.Query, error)
	GetModelExplore(ctx context.Context, model, explore string) (models.ModelExplore, error)
	RunQuery(ctx context.Context, queryID string) ([]queryfields.ResultRow, error)
	ListIntegrations(ctx context.Context) ([]models.Integration, error)
}
