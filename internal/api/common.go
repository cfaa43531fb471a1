package api

import (
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

const dateTimeFormat = time.RFC3339

type userResp struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func mapToUserResp(user *model.User) (*userResp, error) {
	return &userResp{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

type occurrenceResp struct {
	EventID     string `json:"event_id"`
	InstanceKey string `json:"instance_key"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	AllDay      bool   `json:"all_day"`
	Recurring   bool   `json:"recurring"`
	Start       string `json:"start"`
	End         string `json:"end"`
	RRule       string `json:"rrule,omitempty"`
}

func mapToOccurrenceResp(o *model.Occurrence) (*occurrenceResp, error) {
	return &occurrenceResp{
		EventID:     o.EventID,
		InstanceKey: o.InstanceKey,
		Title:       o.Title,
		Description: o.Description,
		Color:       o.Color,
		AllDay:      o.IsAllDay,
		Recurring:   o.IsRecurring,
		Start:       o.Start.Format(dateTimeFormat),
		End:         o.End.Format(dateTimeFormat),
		RRule:       o.RRule,
	}, nil
}
