package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/grid"
)

const (
	gridSheet = "Week"
	listSheet = "Appointments"

	headerRow   = 2 // day names on the grid sheet
	firstRow    = 3 // first hour row on the grid sheet
	firstColumn = 2 // Monday on the grid sheet
)

// WriteWeekXLSX writes the week as a workbook with two sheets: the board grid,
// one colored block per appointment, and a flat appointment list with totals.
func WriteWeekXLSX(w io.Writer, wb *board.WeekBoard, mapper *grid.Mapper, currency string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", gridSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeGridSheet(f, wb, mapper, currency); err != nil {
		return err
	}

	if _, err := f.NewSheet(listSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeListSheet(f, wb, currency); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeGridSheet(f *excelize.File, wb *board.WeekBoard, mapper *grid.Mapper, currency string) error {
	monday := wb.Monday()
	sunday := monday.AddDate(0, 0, 6)
	_ = f.SetCellValue(gridSheet, "A1", fmt.Sprintf("Week %s - %s",
		dateutil.FormatDate(monday), dateutil.FormatDate(sunday)))

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	_ = f.SetCellStyle(gridSheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FCE4EC"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col := range grid.Columns {
		cell, _ := excelize.CoordinatesToCellName(firstColumn+col, headerRow)
		day := wb.Layout.Day(col)
		_ = f.SetCellValue(gridSheet, cell, fmt.Sprintf("%s %s", booking.WeekdayShortName(col), day.Format("02/01")))
		_ = f.SetCellStyle(gridSheet, cell, cell, headerStyle)
	}

	for row := range mapper.Rows() {
		cell, _ := excelize.CoordinatesToCellName(1, firstRow+row)
		_ = f.SetCellValue(gridSheet, cell, mapper.RowClock(row))
	}

	styles := make(map[string]int)
	for _, b := range wb.Layout.Blocks {
		top, _ := excelize.CoordinatesToCellName(firstColumn+b.Column, firstRow+b.Row)
		lastRow := min(b.Row+b.Span(), mapper.Rows()) - 1
		bottom, _ := excelize.CoordinatesToCellName(firstColumn+b.Column, firstRow+lastRow)

		e := b.Event
		_ = f.SetCellValue(gridSheet, top, fmt.Sprintf("%s-%s %s\n%s %s",
			e.Start, e.End, e.Service, e.Client, e.Price.Format(currency)))

		if bottom != top {
			if err := f.MergeCell(gridSheet, top, bottom); err != nil {
				return fmt.Errorf("merging %s:%s: %w", top, bottom, err)
			}
		}

		style, ok := styles[e.Color]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Fill:      excelize.Fill{Type: "pattern", Color: []string{e.Color}, Pattern: 1},
				Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
			})
			if err != nil {
				return fmt.Errorf("creating style for %s: %w", e.Color, err)
			}
			styles[e.Color] = style
		}
		_ = f.SetCellStyle(gridSheet, top, bottom, style)
	}

	_ = f.SetColWidth(gridSheet, "A", "A", 8)
	_ = f.SetColWidth(gridSheet, "B", "H", 24)
	return nil
}

func writeListSheet(f *excelize.File, wb *board.WeekBoard, currency string) error {
	headers := []any{"Date", "Day", "Start", "End", "Service", "Client", "Price (" + currency + ")"}
	if err := f.SetSheetRow(listSheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, e := range wb.Summary.Events {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{
			e.DateKey(),
			booking.WeekdayName(dateutil.WeekdayIndex(e.Date)),
			e.Start,
			e.End,
			e.Service,
			e.Client,
			e.Price.Float(),
		}
		if err := f.SetSheetRow(listSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	st := wb.Summary.Stats
	cell, _ := excelize.CoordinatesToCellName(1, row+1)
	totals := []any{"Total", "", "", "", fmt.Sprintf("%d appointments", st.Appointments), "", st.Revenue.Float()}
	if err := f.SetSheetRow(listSheet, cell, &totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetRowStyle(listSheet, 1, 1, bold)
	_ = f.SetRowStyle(listSheet, row+1, row+1, bold)
	_ = f.SetColWidth(listSheet, "A", "A", 12)
	_ = f.SetColWidth(listSheet, "E", "F", 20)
	return nil
}
