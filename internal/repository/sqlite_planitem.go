package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLitePlanItemRepo implements PlanItemRepo using a SQLite database.
type SQLitePlanItemRepo struct {
	db db.DBTX
}

func NewSQLitePlanItemRepo(conn db.DBTX) *SQLitePlanItemRepo {
	return &SQLitePlanItemRepo{db: conn}
}

const planItemColumns = `id, start_time, start_minutes, duration_minutes, text`

func (r *SQLitePlanItemRepo) Create(ctx context.Context, item domain.PlanItem) error {
	query := `INSERT INTO plan_items (id, day, start_time, start_minutes, duration_minutes, end_minutes, text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		dayKey(item.Day()),
		item.StartTime.Format(time.RFC3339),
		item.StartMinutes,
		item.DurationMinutes,
		item.StartMinutes+item.DurationMinutes,
		item.Text,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting plan item: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) GetByID(ctx context.Context, id string) (domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items WHERE id = ?`
	item, err := scanPlanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlanItem{}, fmt.Errorf("plan item %s: %w", id, ErrNotFound)
	}
	return item, err
}

func (r *SQLitePlanItemRepo) ListByDay(ctx context.Context, day time.Time) ([]domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items WHERE day = ? ORDER BY start_minutes, id`
	rows, err := r.db.QueryContext(ctx, query, dayKey(domain.DayStart(day)))
	if err != nil {
		return nil, fmt.Errorf("listing plan items by day: %w", err)
	}
	defer rows.Close()
	return scanPlanItems(rows)
}

func (r *SQLitePlanItemRepo) ListOverlapping(ctx context.Context, item domain.PlanItem) ([]domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items
		WHERE day = ? AND id != ? AND start_minutes < ? AND end_minutes > ?
		ORDER BY start_minutes, id`
	rows, err := r.db.QueryContext(ctx, query,
		dayKey(item.Day()),
		item.ID,
		item.StartMinutes+item.DurationMinutes,
		item.StartMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("listing overlapping plan items: %w", err)
	}
	defer rows.Close()
	return scanPlanItems(rows)
}

func (r *SQLitePlanItemRepo) Update(ctx context.Context, item domain.PlanItem) error {
	query := `UPDATE plan_items SET day = ?, start_time = ?, start_minutes = ?, duration_minutes = ?,
		end_minutes = ?, text = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		dayKey(item.Day()),
		item.StartTime.Format(time.RFC3339),
		item.StartMinutes,
		item.DurationMinutes,
		item.StartMinutes+item.DurationMinutes,
		item.Text,
		nowUTC(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan item: %w", err)
	}
	return requireAffected(res, "plan item "+item.ID)
}

func (r *SQLitePlanItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan item: %w", err)
	}
	return requireAffected(res, "plan item "+id)
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlanItem(row rowScanner) (domain.PlanItem, error) {
	var (
		id, startStr, text string
		startMin, durMin   int
	)
	if err := row.Scan(&id, &startStr, &startMin, &durMin, &text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PlanItem{}, err
		}
		return domain.PlanItem{}, fmt.Errorf("scanning plan item: %w", err)
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return domain.PlanItem{}, fmt.Errorf("parsing start_time of plan item %s: %w", id, err)
	}
	item, err := domain.NewPlanItem(id, domain.DayStart(start), startMin, durMin, text)
	if err != nil {
		return domain.PlanItem{}, fmt.Errorf("loading plan item %s: %w", id, err)
	}
	return item, nil
}

func scanPlanItems(rows *sql.Rows) ([]domain.PlanItem, error) {
	var items []domain.PlanItem
	for rows.Next() {
		item, err := scanPlanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan items: %w", err)
	}
	return items, nil
}
