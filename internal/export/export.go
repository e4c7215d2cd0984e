// Package export writes the goal collection as a JSON document or an XLSX
// workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/templui/goalboard/internal/format"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/repository"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

func (f Format) Filename() string {
	return "goals-export." + string(f)
}

// Write encodes goals in format f. now is used for the Days Left column.
func Write(w io.Writer, f Format, goals []*model.Goal, now time.Time) error {
	switch f {
	case FormatJSON:
		data, err := repository.Encode(goals)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatXLSX:
		return writeXLSX(w, goals, now)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

const sheet = "Goals"

var headers = []string{
	"Name",
	"Category",
	"Status",
	"Start Date",
	"Deadline",
	"Days Left",
	"Target",
	"Saved",
	"Remaining",
	"Progress",
	"Check-in",
	"Description",
}

func writeXLSX(w io.Writer, goals []*model.Goal, now time.Time) error {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", sheet)
	if err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, g := range goals {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		target, _ := g.TargetAmount.Float64()
		current, _ := g.CurrentAmount.Float64()
		remaining, _ := g.Remaining().Float64()

		write(1, g.Name)
		write(2, string(g.Category))
		write(3, string(g.Status))
		write(4, g.StartDate.String())
		write(5, g.Deadline.String())
		write(6, g.DaysRemaining(now))
		write(7, target)
		write(8, current)
		write(9, remaining)
		write(10, format.Percent(g.Progress()))
		write(11, checkIn(g))
		write(12, g.Description)

		from, _ := excelize.CoordinatesToCellName(7, row)
		to, _ := excelize.CoordinatesToCellName(9, row)
		_ = f.SetCellStyle(sheet, from, to, money)
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 14)
	_ = f.SetColWidth(sheet, "D", "E", 12)
	_ = f.SetColWidth(sheet, "G", "I", 14)
	_ = f.SetColWidth(sheet, "K", "K", 32)
	_ = f.SetColWidth(sheet, "L", "L", 48)

	_, err = f.WriteTo(w)
	if err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}

	slog.Debug("goals exported", "format", "xlsx", "rows", len(goals), "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

func checkIn(g *model.Goal) string {
	switch {
	case g.CheckInPerson != "" && g.CheckInEmail != "":
		return g.CheckInPerson + " <" + g.CheckInEmail + ">"
	case g.CheckInEmail != "":
		return g.CheckInEmail
	}
	return g.CheckInPerson
}
