package model

import "time"

type Reminder struct {
	ID               string
	EventID          string
	MinutesBefore    int
	NotificationSent bool
}

// ReminderOptions are the lead times, in minutes, offered by the event form.
var ReminderOptions = []int{5, 15, 30, 60, 120, 1440, 10080}

type Recipient struct {
	UserID    string
	Email     string
	PushToken string
}

// DueReminder is a reminder joined with the data needed to decide whether it
// is due and to render its notification.
type DueReminder struct {
	Reminder  Reminder
	Event     Event
	Recipient Recipient
	// Invalid is set by the store when the row could not be mapped cleanly.
	// Such rows are still returned so the caller can skip them one by one.
	Invalid error
}

func (d *DueReminder) LeadTime() time.Duration {
	return time.Duration(d.Reminder.MinutesBefore) * time.Minute
}

func (d *DueReminder) TriggerAt() time.Time {
	return d.Event.Start.Add(-d.LeadTime())
}

func (d *DueReminder) IsDue(now time.Time) bool {
	return !d.Reminder.NotificationSent && !d.TriggerAt().After(now)
}

type NotificationStatus string

const (
	NotificationSent          NotificationStatus = "sent"
	NotificationFailed        NotificationStatus = "failed"
	NotificationSentNotMarked NotificationStatus = "sent_not_marked"
)

type NotificationOutcome struct {
	ReminderID string             `json:"reminder_id"`
	EventID    string             `json:"event_id"`
	EventTitle string             `json:"event_title"`
	Status     NotificationStatus `json:"status"`
	Error      string             `json:"error,omitempty"`
}

// DispatchReport summarizes one dispatch pass.
type DispatchReport struct {
	Processed int                    `json:"processed"`
	Sent      int                    `json:"sent"`
	Unmarked  int                    `json:"sent_not_marked"`
	Failed    int                    `json:"failed"`
	Details   []*NotificationOutcome `json:"details"`
}

func (r *DispatchReport) Add(o *NotificationOutcome) {
	r.Processed++
	switch o.Status {
	case NotificationSent:
		r.Sent++
	case NotificationSentNotMarked:
		r.Unmarked++
	default:
		r.Failed++
	}
	r.Details = append(r.Details, o)
}
