package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alertmgr/backend/pkg/constants"
	apperrors "github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/utils"
)

const lockRetries = 3

// AlertRepository stores alerts in the am_alert table. Nested values
// (field, filters, destinations, followers) are JSON-encoded columns.
type AlertRepository struct {
	db  *sql.DB
	tm  *TransactionManager
	now func() time.Time
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{
		db:  db,
		tm:  NewTransactionManager(db),
		now: func() time.Time { return time.Now().UTC() },
	}
}

var selectAlertSQL = fmt.Sprintf("SELECT %s FROM %s",
	strings.Join(constants.AlertColumns, ", "), constants.TableAlert)

type rowScanner interface {
	Scan(dest ...any) error
}

// GetAlert loads one alert by id
func (r *AlertRepository) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	query := selectAlertSQL + fmt.Sprintf(" WHERE %s = ?", constants.FieldID)
	alert, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Alert{}, apperrors.NewNotFoundError("Alert", id)
	}
	if err != nil {
		return models.Alert{}, fmt.Errorf("get alert %s: %w", id, err)
	}
	return alert, nil
}

// ListAlerts returns every alert, or only those of one dashboard when
// dashboardID is non-empty, ordered by creation time
func (r *AlertRepository) ListAlerts(ctx context.Context, dashboardID string) ([]models.Alert, error) {
	query := selectAlertSQL
	var args []any
	if dashboardID != "" {
		query += fmt.Sprintf(" WHERE %s = ?", constants.FieldDashboardID)
		args = append(args, dashboardID)
	}
	query += fmt.Sprintf(" ORDER BY %s, %s", constants.FieldCreatedDate, constants.FieldID)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}

// CreateAlert inserts a new alert with a fresh id and timestamps
func (r *AlertRepository) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	alert = alert.Clone()
	alert.ID = utils.GenerateID()
	alert.CreatedAt = r.now()
	alert.UpdatedAt = alert.CreatedAt

	values, err := alertValues(alert)
	if err != nil {
		return models.Alert{}, err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(constants.AlertColumns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		constants.TableAlert, strings.Join(constants.AlertColumns, ", "), placeholders)

	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return models.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	return alert, nil
}

// UpdateAlert overwrites the mutable columns of an existing alert. The id,
// owner and creation time of the stored row are kept.
func (r *AlertRepository) UpdateAlert(ctx context.Context, id string, alert models.Alert) (models.Alert, error) {
	alert = alert.Clone()
	err := r.tm.WithRetry(ctx, func(tx *sql.Tx) error {
		var ownerID, createdAt string
		query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ?",
			constants.FieldOwnerID, constants.FieldCreatedDate, constants.TableAlert, constants.FieldID)
		if err := tx.QueryRowContext(ctx, query, id).Scan(&ownerID, &createdAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFoundError("Alert", id)
			}
			return fmt.Errorf("load alert %s: %w", id, err)
		}

		alert.ID = id
		alert.OwnerID = ownerID
		alert.CreatedAt = parseTimestamp(createdAt)
		alert.UpdatedAt = r.now()

		values, err := alertValues(alert)
		if err != nil {
			return err
		}
		// skip id, owner_id and created_at
		columns := updatableColumns()
		setClauses := make([]string, len(columns))
		args := make([]any, 0, len(columns)+1)
		for i, col := range columns {
			setClauses[i] = col + " = ?"
			args = append(args, values[columnIndex(col)])
		}
		args = append(args, id)

		update := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			constants.TableAlert, strings.Join(setClauses, ", "), constants.FieldID)
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return fmt.Errorf("update alert %s: %w", id, err)
		}
		return nil
	}, lockRetries)
	if err != nil {
		return models.Alert{}, err
	}
	return alert, nil
}

// UnfollowAlert removes userID from the alert's followers. Removing a user
// who does not follow the alert is not an error.
func (r *AlertRepository) UnfollowAlert(ctx context.Context, id, userID string) error {
	return r.tm.WithRetry(ctx, func(tx *sql.Tx) error {
		var raw []byte
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
			constants.FieldFollowers, constants.TableAlert, constants.FieldID)
		if err := tx.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFoundError("Alert", id)
			}
			return fmt.Errorf("load followers of %s: %w", id, err)
		}

		var followers []string
		if err := decodeJSON(raw, &followers); err != nil {
			return fmt.Errorf("decode followers of %s: %w", id, err)
		}
		kept := make([]string, 0, len(followers))
		for _, f := range followers {
			if f != userID {
				kept = append(kept, f)
			}
		}
		if len(kept) == len(followers) {
			return nil
		}

		encoded, err := json.Marshal(kept)
		if err != nil {
			return err
		}
		update := fmt.Sprintf("UPDATE %s SET %s = ?, %s = ? WHERE %s = ?",
			constants.TableAlert, constants.FieldFollowers, constants.FieldLastModifiedDate, constants.FieldID)
		if _, err := tx.ExecContext(ctx, update, string(encoded), formatTimestamp(r.now()), id); err != nil {
			return fmt.Errorf("unfollow alert %s: %w", id, err)
		}
		return nil
	}, lockRetries)
}

func updatableColumns() []string {
	cols := make([]string, 0, len(constants.AlertColumns))
	for _, col := range constants.AlertColumns {
		switch col {
		case constants.FieldID, constants.FieldOwnerID, constants.FieldCreatedDate:
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

func columnIndex(col string) int {
	for i, c := range constants.AlertColumns {
		if c == col {
			return i
		}
	}
	return -1
}

// alertValues returns the column values of alert in AlertColumns order
func alertValues(alert models.Alert) ([]any, error) {
	field, err := encodeJSON(alert.Field)
	if err != nil {
		return nil, fmt.Errorf("encode field: %w", err)
	}
	filters, err := encodeJSON(nonNil(alert.AppliedDashboardFilters))
	if err != nil {
		return nil, fmt.Errorf("encode applied filters: %w", err)
	}
	destinations, err := encodeJSON(nonNil(alert.Destinations))
	if err != nil {
		return nil, fmt.Errorf("encode destinations: %w", err)
	}
	followers, err := encodeJSON(nonNil(alert.Followers))
	if err != nil {
		return nil, fmt.Errorf("encode followers: %w", err)
	}

	var threshold any
	if alert.Threshold != nil {
		threshold = *alert.Threshold
	}

	return []any{
		alert.ID,
		alert.OwnerID,
		alert.Source.DashboardID,
		alert.Source.DashboardTitle,
		alert.Source.DashboardURL,
		alert.Source.QuerySlug,
		alert.Source.Model,
		alert.Source.View,
		alert.CustomTitle,
		string(alert.ComparisonType),
		threshold,
		alert.Cron,
		field,
		filters,
		destinations,
		followers,
		formatTimestamp(alert.CreatedAt),
		formatTimestamp(alert.UpdatedAt),
	}, nil
}

func scanAlert(row rowScanner) (models.Alert, error) {
	var (
		alert        models.Alert
		comparison   string
		threshold    sql.NullFloat64
		field        []byte
		filters      []byte
		destinations []byte
		followers    []byte
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(
		&alert.ID,
		&alert.OwnerID,
		&alert.Source.DashboardID,
		&alert.Source.DashboardTitle,
		&alert.Source.DashboardURL,
		&alert.Source.QuerySlug,
		&alert.Source.Model,
		&alert.Source.View,
		&alert.CustomTitle,
		&comparison,
		&threshold,
		&alert.Cron,
		&field,
		&filters,
		&destinations,
		&followers,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Alert{}, err
	}

	alert.ComparisonType = constants.ComparisonType(comparison)
	if threshold.Valid {
		v := threshold.Float64
		alert.Threshold = &v
	}
	if err := decodeJSON(field, &alert.Field); err != nil {
		return models.Alert{}, fmt.Errorf("decode field of %s: %w", alert.ID, err)
	}
	if err := decodeJSON(filters, &alert.AppliedDashboardFilters); err != nil {
		return models.Alert{}, fmt.Errorf("decode applied filters of %s: %w", alert.ID, err)
	}
	if err := decodeJSON(destinations, &alert.Destinations); err != nil {
		return models.Alert{}, fmt.Errorf("decode destinations of %s: %w", alert.ID, err)
	}
	if err := decodeJSON(followers, &alert.Followers); err != nil {
		return models.Alert{}, fmt.Errorf("decode followers of %s: %w", alert.ID, err)
	}
	alert.CreatedAt = parseTimestamp(createdAt)
	alert.UpdatedAt = parseTimestamp(updatedAt)
	return alert, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
