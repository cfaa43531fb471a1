package model

import "time"

type Holiday struct {
	Date    time.Time
	Name    string
	Country string
}
