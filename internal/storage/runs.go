package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dhima/job-alert-trigger/internal/models"
)

// ErrRunNotFound is returned when a run is not found.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, kind, status_class, http_status, endpoint, keywords, location,
		       min_relevance, email, source, log_lines, started_at, duration_ms, created_at`

// CreateRun inserts a finished run.
func (c *MySQLClient) CreateRun(ctx context.Context, run *models.RunRecord) error {
	lines, err := json.Marshal(nonNilLines(run.LogLines))
	if err != nil {
		return fmt.Errorf("marshal log lines: %w", err)
	}

	var httpStatus sql.NullInt64
	if run.HTTPStatus != nil {
		httpStatus = sql.NullInt64{Int64: int64(*run.HTTPStatus), Valid: true}
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO alert_runs (
			id, kind, status_class, http_status, endpoint, keywords, location,
			min_relevance, email, source, log_lines, started_at, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Kind,
		run.StatusClass,
		httpStatus,
		run.Endpoint,
		run.Keywords,
		run.Location,
		run.MinRelevance,
		run.Email,
		run.Source,
		string(lines),
		run.StartedAt,
		run.DurationMS,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun fetches a single run by ID.
func (c *MySQLClient) GetRun(ctx context.Context, id string) (*models.RunRecord, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM alert_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first with filtering and pagination, plus the
// total count for the filter.
func (c *MySQLClient) ListRuns(ctx context.Context, query models.ListRunsQuery) ([]models.RunRecord, int64, error) {
	query = query.Normalize()

	whereClauses := []string{}
	args := []interface{}{}

	if query.Kind != "" {
		whereClauses = append(whereClauses, "kind = ?")
		args = append(args, query.Kind)
	}
	if query.StatusClass != "" {
		whereClauses = append(whereClauses, "status_class = ?")
		args = append(args, query.StatusClass)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM alert_runs %s", whereClause)
	if err := c.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count runs: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM alert_runs
		%s
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?`, runColumns, whereClause)
	args = append(args, query.Limit, query.Offset())

	rows, err := c.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []models.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.RunRecord, error) {
	var (
		run        models.RunRecord
		httpStatus sql.NullInt64
		lines      string
	)
	if err := row.Scan(
		&run.ID,
		&run.Kind,
		&run.StatusClass,
		&httpStatus,
		&run.Endpoint,
		&run.Keywords,
		&run.Location,
		&run.MinRelevance,
		&run.Email,
		&run.Source,
		&lines,
		&run.StartedAt,
		&run.DurationMS,
		&run.CreatedAt,
	); err != nil {
		return nil, err
	}

	if httpStatus.Valid {
		status := int(httpStatus.Int64)
		run.HTTPStatus = &status
	}
	if err := json.Unmarshal([]byte(lines), &run.LogLines); err != nil {
		return nil, fmt.Errorf("decode log lines: %w", err)
	}
	run.LogLines = nonNilLines(run.LogLines)
	return &run, nil
}

func nonNilLines(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
