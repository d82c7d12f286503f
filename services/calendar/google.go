package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardioconsult/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ConferenceTypeMeet asks Google to attach a Meet link to the event.
const ConferenceTypeMeet = "hangoutsMeet"

// GoogleCalendar implements Collaborator on top of the Calendar v3 API.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleService builds an authenticated Calendar client from a
// service-account or authorized-user JSON file.
func NewGoogleService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*gcal.Service, error) {
	base := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	}
	svc, err := gcal.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return svc, nil
}

// NewGoogleCalendar wraps an authenticated service. Events are written to calendarID.
func NewGoogleCalendar(svc *gcal.Service, calendarID string) *GoogleCalendar {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID}
}

func (g *GoogleCalendar) FreeBusy(ctx context.Context, window models.TimeWindow, ids []string) (map[string][]models.BusyInterval, error) {
	items := make([]*gcal.FreeBusyRequestItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, &gcal.FreeBusyRequestItem{Id: id})
	}

	resp, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: freebusy query: %w", err)
	}

	out := make(map[string][]models.BusyInterval, len(ids))
	for _, id := range ids {
		cal, ok := resp.Calendars[id]
		if !ok {
			return nil, fmt.Errorf("calendar: freebusy response missing %s", id)
		}
		if len(cal.Errors) > 0 {
			reasons := make([]string, 0, len(cal.Errors))
			for _, e := range cal.Errors {
				reasons = append(reasons, e.Reason)
			}
			return nil, fmt.Errorf("calendar: freebusy for %s: %s", id, strings.Join(reasons, ", "))
		}

		busy := make([]models.BusyInterval, 0, len(cal.Busy))
		for _, p := range cal.Busy {
			start, err := time.Parse(time.RFC3339, p.Start)
			if err != nil {
				return nil, fmt.Errorf("calendar: busy start %q: %w", p.Start, err)
			}
			end, err := time.Parse(time.RFC3339, p.End)
			if err != nil {
				return nil, fmt.Errorf("calendar: busy end %q: %w", p.End, err)
			}
			busy = append(busy, models.BusyInterval{Start: start, End: end})
		}
		out[id] = busy
	}
	return out, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, spec models.EventSpec) (models.MeetingRecord, error) {
	attendees := make([]*gcal.EventAttendee, 0, len(spec.Attendees))
	for _, a := range spec.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{Email: a.Email, Organizer: a.Organizer})
	}

	conferenceType := spec.ConferenceType
	if conferenceType == "" {
		conferenceType = ConferenceTypeMeet
	}

	event := &gcal.Event{
		Summary:     spec.Title,
		Description: spec.Description,
		Start: &gcal.EventDateTime{
			DateTime: spec.Start.Format(time.RFC3339),
			TimeZone: spec.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: spec.End.Format(time.RFC3339),
			TimeZone: spec.TimeZone,
		},
		Attendees: attendees,
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             spec.ConferenceRequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: conferenceType},
			},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return models.MeetingRecord{}, fmt.Errorf("calendar: insert event: %w", err)
	}
	return models.MeetingRecord{Link: created.HtmlLink}, nil
}
