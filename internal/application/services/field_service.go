package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/domain/ports"
	"github.com/alertmgr/backend/pkg/queryfields"
)

type FieldService struct {
	bi     ports.BIPlatform
	logger zerolog.Logger
}

func NewFieldService(bi ports.BIPlatform, logger zerolog.Logger) *FieldService {
	return &FieldService{
		bi:     bi,
		logger: logger.With().Str("component", "field_service").Logger(),
	}
}

// FieldOptions resolves the alertable fields of the query behind slug. The
// query is only run when it has pivots.
func (s *FieldService) FieldOptions(ctx context.Context, slug string) (queryfields.PivotFieldOptions, error) {
	query, err := s.bi.GetQuery(ctx, slug)
	if err != nil {
		return queryfields.PivotFieldOptions{}, fmt.Errorf("get query %s: %w", slug, err)
	}
	explore, err := s.bi.GetModelExplore(ctx, query.Model, query.View)
	if err != nil {
		return queryfields.PivotFieldOptions{}, fmt.Errorf("get explore %s/%s: %w", query.Model, query.View, err)
	}

	resolver := queryfields.NewResolver(explore, query)
	options, err := resolver.QueryPivotFieldOptions(ctx, s.bi)
	if err != nil {
		return queryfields.PivotFieldOptions{}, err
	}

	s.logger.Debug().
		Str("slug", slug).
		Int("pivot_combinations", len(options.PivotValues)).
		Int("options", len(options.FieldOptions)).
		Msg("resolved field options")
	return options, nil
}
