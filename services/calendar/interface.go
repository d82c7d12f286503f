package calendar

import (
	"context"

	"cardioconsult/models"
)

// Collaborator is the calendar capability the scheduling core consumes.
type Collaborator interface {
	// FreeBusy returns busy intervals keyed by participant id for the window.
	// Every requested id is present in the result.
	FreeBusy(ctx context.Context, window models.TimeWindow, ids []string) (map[string][]models.BusyInterval, error)
	// CreateEvent inserts the event, provisions its conference and notifies attendees.
	CreateEvent(ctx context.Context, spec models.EventSpec) (models.MeetingRecord, error)
}
