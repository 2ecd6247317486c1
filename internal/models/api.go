package models

import "time"

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ParticipantRequest carries the inputs of signup and unregister.
type ParticipantRequest struct {
	Activity string `label:"activity" validate:"required"`
	Email    string `label:"email query parameter" validate:"required"`
}

type RosterEventType string

const (
	RosterEventSignedUp     RosterEventType = "participant.signed_up"
	RosterEventUnregistered RosterEventType = "participant.unregistered"
)

// RosterEvent describes a change to an activity's participant list.
type RosterEvent struct {
	ID              string          `json:"id"`
	Type            RosterEventType `json:"type"`
	Activity        string          `json:"activity"`
	Email           string          `json:"email"`
	Participants    int             `json:"participants"`
	MaxParticipants int             `json:"maxParticipants"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
