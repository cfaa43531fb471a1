package events

import (
	"sort"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// Merge combines single events with expanded occurrences into one sequence
// ordered by start. Equal starts are ordered by event ID so reruns produce
// the same output.
func Merge(events []*model.Event, occurrences []*model.Occurrence) []*model.Occurrence {
	res := make([]*model.Occurrence, 0, len(events)+len(occurrences))
	for _, e := range events {
		res = append(res, singleOccurrence(e))
	}
	res = append(res, occurrences...)

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].Start.Equal(res[j].Start) {
			return res[i].Start.Before(res[j].Start)
		}
		return res[i].EventID < res[j].EventID
	})

	return res
}

func singleOccurrence(e *model.Event) *model.Occurrence {
	return &model.Occurrence{
		EventID:     e.ID,
		InstanceKey: model.InstanceKey(e.ID, e.Start),
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
		IsAllDay:    e.IsAllDay,
		Start:       e.Start,
		End:         e.End,
	}
}
