package services

import (
	"context"
	"time"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"github.com/getmentor/mentor-match-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MatchRequestService applies role checks around the match request ledger
type MatchRequestService struct {
	ledger repository.MatchRequestRepositoryInterface
}

// NewMatchRequestService creates a new MatchRequestService
func NewMatchRequestService(ledger repository.MatchRequestRepositoryInterface) *MatchRequestService {
	return &MatchRequestService{ledger: ledger}
}

// observe records the outcome of a ledger operation
func observe(operation string, start time.Time, err error) {
	status := "success"
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrForbidden):
		status = "forbidden"
	case apperrors.Is(err, apperrors.ErrNotFound):
		status = "not_found"
	case apperrors.IsClientError(err):
		status = "rejected"
	default:
		status = "error"
	}
	metrics.MatchRequestOperations.WithLabelValues(operation, status).Inc()
	metrics.MatchRequestOperationDuration.WithLabelValues(operation).Observe(metrics.MeasureDuration(start))
}

// Create records a pending request from the calling mentee
func (s *MatchRequestService) Create(ctx context.Context, session *models.Session, req *models.CreateMatchRequestPayload) (result *models.MatchRequest, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "MatchRequests.Create",
		attribute.Int("mentor.id", req.MentorID),
		attribute.Int("mentee.id", session.UserID))
	defer func() {
		observe("create", start, err)
		tracing.EndSpan(span, err)
	}()

	if err = session.RequireRole(models.RoleMentee); err != nil {
		return nil, err
	}
	if req.MenteeID != 0 && req.MenteeID != session.UserID {
		return nil, apperrors.InvalidInputError("menteeId", "does not match the authenticated user")
	}

	result, err = s.ledger.Create(ctx, req.MentorID, session.UserID, req.Message)
	if err != nil {
		logger.Warn("Match request not created",
			zap.Int("mentor_id", req.MentorID),
			zap.Int("mentee_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Match request created",
		zap.Int("request_id", result.ID),
		zap.Int("mentor_id", result.MentorID),
		zap.Int("mentee_id", result.MenteeID))

	return result, nil
}

// Incoming lists requests addressed to the calling mentor
func (s *MatchRequestService) Incoming(ctx context.Context, session *models.Session) (result []*models.MatchRequest, err error) {
	start := time.Now()
	defer func() { observe("incoming", start, err) }()

	if err = session.RequireRole(models.RoleMentor); err != nil {
		return nil, err
	}
	return s.ledger.Incoming(ctx, session.UserID)
}

// Outgoing lists requests created by the calling mentee, without messages
func (s *MatchRequestService) Outgoing(ctx context.Context, session *models.Session) (result []models.OutgoingMatchRequest, err error) {
	start := time.Now()
	defer func() { observe("outgoing", start, err) }()

	if err = session.RequireRole(models.RoleMentee); err != nil {
		return nil, err
	}

	requests, err := s.ledger.Outgoing(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	result = make([]models.OutgoingMatchRequest, 0, len(requests))
	for _, req := range requests {
		result = append(result, req.ToOutgoing())
	}
	return result, nil
}

// Accept accepts a request addressed to the calling mentor and rejects the
// mentor's other pending requests
func (s *MatchRequestService) Accept(ctx context.Context, session *models.Session, requestID int) (result *models.MatchRequest, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "MatchRequests.Accept",
		attribute.Int("request.id", requestID),
		attribute.Int("mentor.id", session.UserID))
	defer func() {
		observe("accept", start, err)
		tracing.EndSpan(span, err)
	}()

	if err = session.RequireRole(models.RoleMentor); err != nil {
		return nil, err
	}

	accepted, err := s.ledger.Accept(ctx, requestID, session.UserID)
	if err != nil {
		logger.Warn("Match request not accepted",
			zap.Int("request_id", requestID),
			zap.Int("mentor_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	if len(accepted.CascadeRejected) > 0 {
		metrics.MatchRequestsCascadeRejected.Add(float64(len(accepted.CascadeRejected)))
	}
	span.SetAttributes(attribute.Int("cascade.rejected", len(accepted.CascadeRejected)))

	logger.Info("Match request accepted",
		zap.Int("request_id", requestID),
		zap.Int("mentor_id", session.UserID),
		zap.Bool("changed", accepted.Changed),
		zap.Ints("cascade_rejected", accepted.CascadeRejected))

	return accepted.Request, nil
}

// Reject rejects a request addressed to the calling mentor
func (s *MatchRequestService) Reject(ctx context.Context, session *models.Session, requestID int) (result *models.MatchRequest, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "MatchRequests.Reject",
		attribute.Int("request.id", requestID),
		attribute.Int("mentor.id", session.UserID))
	defer func() {
		observe("reject", start, err)
		tracing.EndSpan(span, err)
	}()

	if err = session.RequireRole(models.RoleMentor); err != nil {
		return nil, err
	}

	result, err = s.ledger.Reject(ctx, requestID, session.UserID)
	if err != nil {
		logger.Warn("Match request not rejected",
			zap.Int("request_id", requestID),
			zap.Int("mentor_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Match request rejected",
		zap.Int("request_id", requestID),
		zap.Int("mentor_id", session.UserID))

	return result, nil
}

// Cancel withdraws a request created by the calling mentee
func (s *MatchRequestService) Cancel(ctx context.Context, session *models.Session, requestID int) (result *models.MatchRequest, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "MatchRequests.Cancel",
		attribute.Int("request.id", requestID),
		attribute.Int("mentee.id", session.UserID))
	defer func() {
		observe("cancel", start, err)
		tracing.EndSpan(span, err)
	}()

	if err = session.RequireRole(models.RoleMentee); err != nil {
		return nil, err
	}

	result, err = s.ledger.Cancel(ctx, requestID, session.UserID)
	if err != nil {
		logger.Warn("Match request not cancelled",
			zap.Int("request_id", requestID),
			zap.Int("mentee_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Match request cancelled",
		zap.Int("request_id", requestID),
		zap.Int("mentee_id", session.UserID))

	return result, nil
}
