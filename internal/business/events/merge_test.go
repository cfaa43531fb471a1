package events

import (
	"testing"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	at := utc(2025, time.March, 10, 9, 0)

	singles := []*model.Event{
		{ID: "b", Title: "Dentist", Start: at, End: at.Add(time.Hour)},
		{ID: "z", Title: "Lunch", Start: at.Add(3 * time.Hour), End: at.Add(4 * time.Hour)},
	}
	occurrences := []*model.Occurrence{
		{EventID: "c", Start: at.Add(-time.Hour), End: at, IsRecurring: true},
		{EventID: "a", Start: at, End: at.Add(30 * time.Minute), IsRecurring: true},
	}

	got := Merge(singles, occurrences)
	require.Len(t, got, 4)

	var ids []string
	for _, o := range got {
		ids = append(ids, o.EventID)
	}
	assert.Equal(t, []string{"c", "a", "b", "z"}, ids)

	assert.False(t, got[2].IsRecurring)
	assert.Equal(t, "Dentist", got[2].Title)
	assert.Equal(t, model.InstanceKey("b", at), got[2].InstanceKey)
	assert.Empty(t, got[2].RRule)
}

func TestMergeIsDeterministic(t *testing.T) {
	at := utc(2025, time.March, 10, 9, 0)
	singles := []*model.Event{
		{ID: "3", Start: at, End: at},
		{ID: "1", Start: at, End: at},
		{ID: "2", Start: at, End: at},
	}

	first := Merge(singles, nil)
	reversed := Merge([]*model.Event{singles[2], singles[1], singles[0]}, nil)
	assert.Equal(t, first, reversed)
	assert.Equal(t, "1", first[0].EventID)
	assert.Equal(t, "3", first[2].EventID)
}

func TestMergeEmpty(t *testing.T) {
	got := Merge(nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
