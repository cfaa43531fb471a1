// Package holidays loads a holiday calendar from YAML and serves it as
// all-day pseudo-events for calendar views.
package holidays

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/marikeiske/datekeeper-plus/internal/pkg/calendar"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type file struct {
	Country  string `yaml:"country"`
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

type Calendar struct {
	days  []model.Holiday
	color string
}

func Load(path string, loc *time.Location, color string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holidays file: %w", err)
	}

	return Parse(data, loc, color)
}

func Parse(data []byte, loc *time.Location, color string) (*Calendar, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	c := &Calendar{color: color}
	for _, h := range f.Holidays {
		date, err := time.ParseInLocation(dateLayout, h.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		c.days = append(c.days, model.Holiday{Date: date, Name: h.Name, Country: f.Country})
	}

	sort.SliceStable(c.days, func(i, j int) bool {
		return c.days[i].Date.Before(c.days[j].Date)
	})

	return c, nil
}

// Between returns the holidays whose date falls within [from, to], compared
// by calendar date in the calendar's location. A nil Calendar has none.
func (c *Calendar) Between(from, to time.Time) []*model.Event {
	if c == nil || len(c.days) == 0 {
		return nil
	}

	loc := c.days[0].Date.Location()
	first := calendar.DateOf(from.In(loc))
	last := calendar.DateOf(to.In(loc))

	var res []*model.Event
	for _, h := range c.days {
		if h.Date.Before(first) || h.Date.After(last) {
			continue
		}
		res = append(res, &model.Event{
			ID:       "holiday:" + h.Date.Format(dateLayout),
			Title:    h.Name,
			Start:    h.Date,
			End:      h.Date,
			IsAllDay: true,
			Color:    c.color,
		})
	}

	return res
}
