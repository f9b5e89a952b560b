package repository

import (
	"context"
	"sync"

	"github.com/getmentor/mentor-match-api/internal/models"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
)

// AcceptResult is the outcome of an accept: the request and the ids of
// pending requests rejected alongside it
type AcceptResult struct {
	Request         *models.MatchRequest
	CascadeRejected []int
	Changed         bool
}

// MatchRequestRepository is the in-process match request ledger
type MatchRequestRepository struct {
	mu       sync.RWMutex
	nextID   int
	requests []*models.MatchRequest // insertion order
	byID     map[int]*models.MatchRequest
	users    MentorLookup
	strict   bool
}

// NewMatchRequestRepository creates an empty ledger. With strict set, accept
// and reject only move pending requests.
func NewMatchRequestRepository(users MentorLookup, strict bool) *MatchRequestRepository {
	return &MatchRequestRepository{
		nextID: 1,
		byID:   make(map[int]*models.MatchRequest),
		users:  users,
		strict: strict,
	}
}

func copyRequest(r *models.MatchRequest) *models.MatchRequest {
	c := *r
	return &c
}

// Create records a pending request from menteeID to mentorID
func (r *MatchRequestRepository) Create(ctx context.Context, mentorID, menteeID int, message string) (*models.MatchRequest, error) {
	// roles are immutable and users are never removed, so this check can run outside the ledger lock
	if role, ok := r.users.RoleOf(ctx, mentorID); !ok || role != models.RoleMentor {
		return nil, apperrors.ErrInvalidTarget
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.requests {
		if existing.MentorID == mentorID && existing.MenteeID == menteeID && existing.Status == models.StatusPending {
			return nil, apperrors.ErrDuplicatePending
		}
	}

	req := &models.MatchRequest{
		ID:       r.nextID,
		MentorID: mentorID,
		MenteeID: menteeID,
		Message:  message,
		Status:   models.StatusPending,
	}
	r.nextID++
	r.requests = append(r.requests, req)
	r.byID[req.ID] = req

	return copyRequest(req), nil
}

// ownedByMentor must be called with the lock held
func (r *MatchRequestRepository) ownedByMentor(requestID, mentorID int) (*models.MatchRequest, error) {
	req, ok := r.byID[requestID]
	if !ok {
		return nil, apperrors.NotFoundError("match request")
	}
	if req.MentorID != mentorID {
		return nil, apperrors.ForbiddenError("match request belongs to another mentor")
	}
	return req, nil
}

// Accept moves a request to accepted and rejects every other pending request
// to the same mentor in the same critical section
func (r *MatchRequestRepository) Accept(_ context.Context, requestID, mentorID int) (*AcceptResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, err := r.ownedByMentor(requestID, mentorID)
	if err != nil {
		return nil, err
	}

	changed, err := req.Status.CheckTransition(models.StatusAccepted, r.strict)
	if err != nil {
		return nil, err
	}

	result := &AcceptResult{Changed: changed}
	if changed {
		req.Status = models.StatusAccepted
		for _, other := range r.requests {
			if other.ID != req.ID && other.MentorID == mentorID && other.Status == models.StatusPending {
				other.Status = models.StatusRejected
				result.CascadeRejected = append(result.CascadeRejected, other.ID)
			}
		}
	}
	result.Request = copyRequest(req)

	return result, nil
}

// Reject moves a request to rejected
func (r *MatchRequestRepository) Reject(_ context.Context, requestID, mentorID int) (*models.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, err := r.ownedByMentor(requestID, mentorID)
	if err != nil {
		return nil, err
	}

	changed, err := req.Status.CheckTransition(models.StatusRejected, r.strict)
	if err != nil {
		return nil, err
	}
	if changed {
		req.Status = models.StatusRejected
	}

	return copyRequest(req), nil
}

// Cancel withdraws a request; only the mentee who created it may cancel
func (r *MatchRequestRepository) Cancel(_ context.Context, requestID, menteeID int) (*models.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[requestID]
	if !ok {
		return nil, apperrors.NotFoundError("match request")
	}
	if req.MenteeID != menteeID {
		return nil, apperrors.ForbiddenError("match request belongs to another mentee")
	}

	req.Status = models.StatusCancelled

	return copyRequest(req), nil
}

// Incoming lists all requests addressed to mentorID in insertion order
func (r *MatchRequestRepository) Incoming(_ context.Context, mentorID int) ([]*models.MatchRequest, error) {
	return r.filter(func(req *models.MatchRequest) bool { return req.MentorID == mentorID }), nil
}

// Outgoing lists all requests created by menteeID in insertion order
func (r *MatchRequestRepository) Outgoing(_ context.Context, menteeID int) ([]*models.MatchRequest, error) {
	return r.filter(func(req *models.MatchRequest) bool { return req.MenteeID == menteeID }), nil
}

func (r *MatchRequestRepository) filter(keep func(*models.MatchRequest) bool) []*models.MatchRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.MatchRequest, 0)
	for _, req := range r.requests {
		if keep(req) {
			result = append(result, copyRequest(req))
		}
	}
	return result
}
