package view

import (
	"strconv"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// HeaderLabels builds column labels and marks today's column.
// Column 0 is the hour column, labelled with the month of the week.
func HeaderLabels(weekStart time.Time, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, 0, 8)
	todayCols := make(map[int]bool)

	yearSuffix := weekStart.Year() % 100
	monthLabel := weekStart.Format("Jan") + " " + strconv.Itoa(yearSuffix/10) + strconv.Itoa(yearSuffix%10)
	labels = append(labels, monthLabel)

	for i := 0; i < 7; i++ {
		dayDate := weekStart.AddDate(0, 0, i)
		label := booking.WeekdayShortName(i) + " " + strconv.Itoa(dayDate.Day())
		if dateutil.SameDay(dayDate, today) {
			label = "*" + label + "*"
			todayCols[i+1] = true
		}
		labels = append(labels, label)
	}

	return labels, todayCols
}
