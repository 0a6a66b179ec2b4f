// Package biclient talks to the BI platform REST API for query metadata,
// explore metadata, query results and notification integrations.
package biclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/config"
	"github.com/alertmgr/backend/pkg/constants"
	apperrors "github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/queryfields"
)

// maxErrorBody caps how much of an error response is kept in UpstreamError
const maxErrorBody = 4096

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	logger     zerolog.Logger
}

func New(cfg config.BIConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultBITimeoutSec * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Token:   cfg.APIToken,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "biclient").Logger(),
	}
}

// doRequest sends the request and returns the raw response body. Any status
// of 400 or above is reported as an UpstreamError.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if c.Token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+c.Token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("bi request")

	if resp.StatusCode >= 400 {
		respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.NewUpstreamError(method+" "+path, resp.StatusCode, string(respBytes))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response of %s: %w", path, err)
	}
	return nil
}

// GetQuery loads a saved query by its slug
func (c *Client) GetQuery(ctx context.Context, slug string) (models.Query, error) {
	var q models.Query
	if err := c.getJSON(ctx, "/queries/slug/"+url.PathEscape(slug), &q); err != nil {
		return models.Query{}, err
	}
	if q.Slug == "" {
		q.Slug = slug
	}
	return q, nil
}

// GetModelExplore loads the field metadata of one explore
func (c *Client) GetModelExplore(ctx context.Context, model, explore string) (models.ModelExplore, error) {
	var me models.ModelExplore
	path := fmt.Sprintf("/lookml_models/%s/explores/%s", url.PathEscape(model), url.PathEscape(explore))
	if err := c.getJSON(ctx, path, &me); err != nil {
		return models.ModelExplore{}, err
	}
	return me, nil
}

// RunQuery runs a saved query and decodes its rows with key order preserved
func (c *Client) RunQuery(ctx context.Context, queryID string) ([]queryfields.ResultRow, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/queries/"+url.PathEscape(queryID)+"/run/json?server_table_calcs=true", nil)
	if err != nil {
		return nil, err
	}
	return queryfields.ParseResultRows(data)
}

// ListIntegrations returns every notification integration of the platform
func (c *Client) ListIntegrations(ctx context.Context) ([]models.Integration, error) {
	integrations := []models.Integration{}
	if err := c.getJSON(ctx, "/integrations", &integrations); err != nil {
		return nil, err
	}
	return integrations, nil
}
