package notifications

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

const (
	dateLayout = "02 January 2006"
	timeLayout = "15:04"
)

func render(d *model.DueReminder, loc *time.Location) *model.Notification {
	start := d.Event.Start.In(loc)

	return &model.Notification{
		Subject:     "Reminder: " + d.Event.Title,
		Title:       d.Event.Title,
		Description: d.Event.Description,
		Date:        start.Format(dateLayout),
		Time:        start.Format(timeLayout),
		LeadTime:    humanizeLeadTime(d.Reminder.MinutesBefore),
	}
}

func humanizeLeadTime(minutes int) string {
	switch {
	case minutes < 60:
		return plural(float64(minutes), "minute")
	case minutes < 24*60:
		return plural(float64(minutes)/60, "hour")
	default:
		return plural(float64(minutes)/(24*60), "day")
	}
}

func plural(n float64, unit string) string {
	n = math.Round(n*100) / 100
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if n == 1 {
		return fmt.Sprintf("%s %s", s, unit)
	}
	return fmt.Sprintf("%s %ss", s, unit)
}
