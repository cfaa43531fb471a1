package model

import "strings"

// Notification is a rendered reminder, ready for a notifier.
type Notification struct {
	Subject     string
	Title       string
	Description string
	Date        string
	Time        string
	LeadTime    string
}

func (n *Notification) Body() string {
	var b strings.Builder
	b.WriteString(n.Title)
	b.WriteString("\n")
	if n.Description != "" {
		b.WriteString(n.Description)
		b.WriteString("\n")
	}
	b.WriteString("Date: ")
	b.WriteString(n.Date)
	b.WriteString("\nTime: ")
	b.WriteString(n.Time)
	b.WriteString("\nStarts in ")
	b.WriteString(n.LeadTime)

	return b.String()
}

// Data flattens the notification for key/value transports.
func (n *Notification) Data() map[string]string {
	data := map[string]string{
		"subject":   n.Subject,
		"title":     n.Title,
		"date":      n.Date,
		"time":      n.Time,
		"lead_time": n.LeadTime,
	}
	if n.Description != "" {
		data["description"] = n.Description
	}

	return data
}
