package models

import (
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
)

// MatchRequestStatus represents the status of a match request
type MatchRequestStatus string

const (
	StatusPending   MatchRequestStatus = "pending"
	StatusAccepted  MatchRequestStatus = "accepted"
	StatusRejected  MatchRequestStatus = "rejected"
	StatusCancelled MatchRequestStatus = "cancelled"
)

// IsTerminal returns true for every status except pending
func (s MatchRequestStatus) IsTerminal() bool {
	return s != StatusPending
}

// CheckTransition decides whether a request in status s may move to next.
// changed is false when the request is already in next and nothing needs to
// be written. Cancellation is always allowed. In lenient mode every
// transition is allowed; in strict mode only pending requests move, and
// repeating the current decision is a no-op.
func (s MatchRequestStatus) CheckTransition(next MatchRequestStatus, strict bool) (changed bool, err error) {
	if next == StatusCancelled || !strict {
		return true, nil
	}
	if !s.IsTerminal() {
		return true, nil
	}
	if s == next {
		return false, nil
	}
	return false, apperrors.InvalidTransitionError(string(s), string(next))
}

// MatchRequest is a mentee's request to be mentored by a mentor
type MatchRequest struct {
	ID       int                `json:"id"`
	MentorID int                `json:"mentorId"`
	MenteeID int                `json:"menteeId"`
	Message  string             `json:"message"`
	Status   MatchRequestStatus `json:"status"`
}

// ToOutgoing projects a request for the mentee's outgoing list (no message)
func (r *MatchRequest) ToOutgoing() OutgoingMatchRequest {
	return OutgoingMatchRequest{
		ID:       r.ID,
		MentorID: r.MentorID,
		MenteeID: r.MenteeID,
		Status:   r.Status,
	}
}

// OutgoingMatchRequest is the projection returned by GET /match-requests/outgoing
type OutgoingMatchRequest struct {
	ID       int                `json:"id"`
	MentorID int                `json:"mentorId"`
	MenteeID int                `json:"menteeId"`
	Status   MatchRequestStatus `json:"status"`
}

// CreateMatchRequestPayload is the payload for POST /api/match-requests.
// MenteeID is optional; when set it must be the caller. Message may be empty.
type CreateMatchRequestPayload struct {
	MentorID int    `json:"mentorId" binding:"required,gt=0"`
	MenteeID int    `json:"menteeId" binding:"omitempty,gt=0"`
	Message  string `json:"message" binding:"max=1000"`
}
