package api

import (
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/marikeiske/datekeeper-plus/internal/config"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

func (a *Api) getUserCalendarHandler(w http.ResponseWriter, r *http.Request) {
	occurrences, ok := a.userOccurrences(w, r)
	if !ok {
		return
	}

	cal := buildCalendar(occurrences, time.Now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		a.logError(r, err)
	}
}

// buildCalendar renders each occurrence as its own VEVENT, so clients do not
// expand rules a second time.
func buildCalendar(occurrences []*model.Occurrence, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(config.ICSProductID())

	for _, o := range occurrences {
		event := cal.AddEvent(o.InstanceKey + "@datekeeper")
		event.SetDtStampTime(stamp)
		event.SetSummary(o.Title)
		if o.Description != "" {
			event.SetDescription(o.Description)
		}
		if o.Color != "" {
			event.SetProperty(ical.ComponentProperty("COLOR"), o.Color)
		}

		if o.IsAllDay {
			event.SetAllDayStartAt(o.Start)
			// DTEND is exclusive for all-day events
			event.SetAllDayEndAt(o.End.AddDate(0, 0, 1))
			continue
		}
		event.SetStartAt(o.Start)
		event.SetEndAt(o.End)
	}

	return cal
}
