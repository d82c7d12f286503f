package models

import "time"

// MeetingRequest is an inbound booking request. It is consumed once and never stored.
type MeetingRequest struct {
	RequesterEmail    string    `json:"userEmail" binding:"required,email"`
	CounterpartyEmail string    `json:"doctorEmail,omitempty"`
	DesiredStart      time.Time `json:"startTime" binding:"required"`
}

// MeetingRecord is what remains of a booking on our side: the shareable link.
type MeetingRecord struct {
	Link string `json:"link"`
}

// Attendee is a calendar event participant.
type Attendee struct {
	Email     string `json:"email"`
	Organizer bool   `json:"organizer,omitempty"`
}

// EventSpec describes a calendar event to be created with a conference attached.
type EventSpec struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Start               time.Time  `json:"start"`
	End                 time.Time  `json:"end"`
	TimeZone            string     `json:"timeZone,omitempty"`
	Attendees           []Attendee `json:"attendees"`
	ConferenceRequestID string     `json:"conferenceRequestId"`
	ConferenceType      string     `json:"conferenceType"`
}

// MeetingResponse is returned by the booking endpoint.
type MeetingResponse struct {
	Link  string    `json:"link"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
