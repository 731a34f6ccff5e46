package db

import (
	"context"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// VacationStore defines the vacation record operations used by the services.
type VacationStore interface {
	AddVacation(ctx context.Context, date, worker string) (bool, error)
	RemoveVacation(ctx context.Context, date, worker string) error
	ListVacations(ctx context.Context) (model.VacationMap, error)
	ListVacationsBetween(ctx context.Context, start, end string) (model.VacationMap, error)
	DeleteVacationsMonth(ctx context.Context, year, month int) (int, error)
}
