package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// AddVacation records a worker's vacation day. It returns false when the
// (date, worker) pair already exists.
func (d *DB) AddVacation(ctx context.Context, date, worker string) (bool, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO vacation_days (date, worker) VALUES (?, ?)`,
		date, worker,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add vacation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return rows > 0, nil
}

// RemoveVacation deletes a worker's vacation day if present.
func (d *DB) RemoveVacation(ctx context.Context, date, worker string) error {
	_, err := d.conn.ExecContext(ctx,
		`DELETE FROM vacation_days WHERE date = ? AND worker = ?`,
		date, worker,
	)
	if err != nil {
		return fmt.Errorf("failed to remove vacation: %w", err)
	}
	return nil
}

// ListVacations returns every vacation record as a date -> workers map.
func (d *DB) ListVacations(ctx context.Context) (model.VacationMap, error) {
	return d.listVacations(ctx, `SELECT date, worker FROM vacation_days ORDER BY date, id`)
}

// ListVacationsBetween returns the vacation records within the inclusive
// date-string range.
func (d *DB) ListVacationsBetween(ctx context.Context, start, end string) (model.VacationMap, error) {
	return d.listVacations(ctx,
		`SELECT date, worker FROM vacation_days WHERE date BETWEEN ? AND ? ORDER BY date, id`,
		start, end,
	)
}

// DeleteVacationsMonth deletes every vacation record for the given month and
// returns how many were removed.
func (d *DB) DeleteVacationsMonth(ctx context.Context, year, month int) (int, error) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	end := fmt.Sprintf("%04d-%02d-31", year, month)
	result, err := d.conn.ExecContext(ctx,
		`DELETE FROM vacation_days WHERE date BETWEEN ? AND ?`,
		start, end,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vacations: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	return int(rows), nil
}

func (d *DB) listVacations(ctx context.Context, query string, args ...any) (model.VacationMap, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	defer rows.Close()

	vacations := model.VacationMap{}
	for rows.Next() {
		var date, worker string
		if err := rows.Scan(&date, &worker); err != nil {
			return nil, fmt.Errorf("failed to scan vacation row: %w", err)
		}
		vacations.Add(date, worker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vacation rows: %w", err)
	}
	return vacations, nil
}
