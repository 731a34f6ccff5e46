package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/balancer"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// WriteShiftCSV writes a shift schedule as date plus one column per slot.
func WriteShiftCSV(w io.Writer, slots []string, days []balancer.ShiftDay) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"date"}, slots...)); err != nil {
		return err
	}
	for _, day := range days {
		record := []string{day.Date.Format(model.DateFormat)}
		for _, slot := range slots {
			record = append(record, day.Slots[slot])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTaskCSV writes a task schedule as date plus one column per category,
// multi-worker cells joined with "+".
func WriteTaskCSV(w io.Writer, categories []string, days []balancer.TaskDay) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"date"}, categories...)); err != nil {
		return err
	}
	for _, day := range days {
		record := []string{day.Date.Format(model.DateFormat)}
		for _, category := range categories {
			record = append(record, strings.Join(day.Tasks[category], "+"))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteZoneCSV writes a zone schedule as date, zone 1 and zone 2 columns.
func WriteZoneCSV(w io.Writer, days []balancer.ZoneDay) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "zone1", "zone2"}); err != nil {
		return err
	}
	for _, day := range days {
		record := []string{
			day.Date.Format(model.DateFormat),
			strings.Join(day.Zones.Zone1, "+"),
			strings.Join(day.Zones.Zone2, "+"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
