package events

import (
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/marikeiske/datekeeper-plus/internal/pkg/calendar"
)

// Expand materializes the occurrences of a recurring event that intersect
// [from, to], ordered by start. Candidates are always stepped from the
// original start, so month-end clamping never accumulates.
func Expand(event *model.Event, rule *model.RecurrenceRule, from, to time.Time) ([]*model.Occurrence, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, model.ErrInvalidWindow
	}

	rrule, err := RRule(event.Start, rule)
	if err != nil {
		return nil, fmt.Errorf("export rule: %w", err)
	}

	duration := event.End.Sub(event.Start)
	if duration < 0 {
		duration = 0
	}

	var res []*model.Occurrence
	for k := firstCandidate(event, rule, from, duration); ; k++ {
		start, err := calendar.Step(event.Start, rule.Frequency, k*rule.Interval)
		if err != nil {
			return nil, err
		}

		if startsAfter(event.IsAllDay, start, to) {
			break
		}
		if rule.Until != nil && startsAfter(event.IsAllDay, start, *rule.Until) {
			break
		}

		end := start.Add(duration)
		if !overlaps(event.IsAllDay, start, end, from, to) {
			continue
		}

		res = append(res, &model.Occurrence{
			EventID:     event.ID,
			InstanceKey: model.InstanceKey(event.ID, start),
			Title:       event.Title,
			Description: event.Description,
			Color:       event.Color,
			IsAllDay:    event.IsAllDay,
			IsRecurring: true,
			Start:       start,
			End:         end,
			RRule:       rrule,
		})
	}

	return res, nil
}

// firstCandidate estimates the index of the first candidate that can reach
// the window and then backs off until the candidate before it ends before
// from. Occurrences share one duration, so ends grow with starts and every
// skipped candidate is guaranteed to miss the window.
func firstCandidate(event *model.Event, rule *model.RecurrenceRule, from time.Time, duration time.Duration) int {
	if !from.After(event.End) {
		return 0
	}

	var steps int
	switch rule.Frequency {
	case model.FrequencyDaily:
		steps = int(from.Sub(event.Start).Hours() / 24)
	case model.FrequencyWeekly:
		steps = int(from.Sub(event.Start).Hours() / (24 * 7))
	case model.FrequencyMonthly:
		steps = monthsBetween(event.Start, from)
	case model.FrequencyYearly:
		steps = from.Year() - event.Start.Year()
	}

	k := steps / rule.Interval
	for k > 0 {
		prev, err := calendar.Step(event.Start, rule.Frequency, (k-1)*rule.Interval)
		if err != nil {
			return 0
		}
		if endsBefore(event.IsAllDay, prev, prev.Add(duration), from) {
			break
		}
		k--
	}

	if k < 0 {
		return 0
	}
	return k
}

func monthsBetween(a, b time.Time) int {
	b = b.In(a.Location())
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// All-day occurrences are compared by calendar date in the occurrence's own
// location, everything else by instant.
func startsAfter(allDay bool, start, limit time.Time) bool {
	if allDay {
		return calendar.DateOf(start).After(calendar.DateOf(limit.In(start.Location())))
	}
	return start.After(limit)
}

func endsBefore(allDay bool, start, end, limit time.Time) bool {
	if allDay {
		return calendar.DateOf(end).Before(calendar.DateOf(limit.In(start.Location())))
	}
	return end.Before(limit)
}

func overlaps(allDay bool, start, end, from, to time.Time) bool {
	return !endsBefore(allDay, start, end, from) && !startsAfter(allDay, start, to)
}
