package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/authz"
	"hris-backend/internal/identity"
	reviewerrors "hris-backend/internal/review/errors"
	"hris-backend/internal/shared/apperror"
)

const defaultTrendWindow = 5

type Service interface {
	Create(ctx context.Context, actorID string, req CreateReviewRequest) (ReviewResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateReviewRequest) (ReviewResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ListSelf(ctx context.Context, actorID, period string) ([]ReviewListItem, error)
	Statistics(ctx context.Context, employeeID string) (StatisticsResponse, error)
	YearlyChart(ctx context.Context, employeeID string, year int) ([]ChartPoint, error)
	Trend(ctx context.Context, employeeID string, window int) (TrendResponse, error)
}

type service struct {
	repo     Repository
	resolver identity.Resolver
	logger   *zap.Logger
}

func NewService(repo Repository, resolver identity.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateReviewRequest) (ReviewResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return ReviewResponse{}, err
	}

	targetID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}

	subject, err := s.resolver.ResolveSubject(ctx, targetID)
	if err != nil {
		return ReviewResponse{}, err
	}

	decision := authz.CanManageReview(actor, subject)
	if !decision.Allowed {
		s.logger.Warn("review creation denied",
			zap.String("actor_id", actor.UserID.String()),
			zap.String("target_id", targetID.String()),
			zap.String("reason", string(decision.Reason)),
		)
		return ReviewResponse{}, reviewerrors.ErrReviewNotAllowed
	}

	pr := &PerformanceReview{
		ID:         uuid.New(),
		EmployeeID: targetID,
		ReviewerID: actor.UserID,
		Period:     req.Period,
		Rating:     req.Rating,
		Review:     req.Review,
	}
	if err := s.repo.Create(ctx, pr); err != nil {
		s.logger.Error("create performance review failed", zap.Error(err))
		return ReviewResponse{}, err
	}

	s.logger.Info("performance review created",
		zap.String("review_id", pr.ID.String()),
		zap.String("employee_id", targetID.String()),
		zap.Int("rating", pr.Rating),
	)
	return mapToResponse(*pr), nil
}

// Update re-checks authorization against the stored review's subject, never
// against anything the caller supplies.
func (s *service) Update(ctx context.Context, actorID, id string, req UpdateReviewRequest) (ReviewResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return ReviewResponse{}, err
	}

	pr, err := s.findReview(ctx, id)
	if err != nil {
		return ReviewResponse{}, err
	}

	subject, err := s.resolver.ResolveSubject(ctx, pr.EmployeeID)
	if err != nil {
		return ReviewResponse{}, err
	}

	decision := authz.CanUpdateReview(actor, subject, pr.ReviewerID)
	if !decision.Allowed {
		s.logger.Warn("review update denied",
			zap.String("actor_id", actor.UserID.String()),
			zap.String("review_id", id),
			zap.String("reason", string(decision.Reason)),
		)
		return ReviewResponse{}, reviewerrors.ErrReviewNotAllowed
	}

	pr.Period = req.Period
	pr.Rating = req.Rating
	pr.Review = req.Review

	if err := s.repo.Update(ctx, pr); err != nil {
		s.logger.Error("update performance review failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, err
	}

	s.logger.Info("performance review updated", zap.String("review_id", id))
	return mapToResponse(*pr), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return err
	}

	pr, err := s.findReview(ctx, id)
	if err != nil {
		return err
	}

	decision := authz.CanDeleteReview(actor, pr.ReviewerID)
	if !decision.Allowed {
		s.logger.Warn("review delete denied",
			zap.String("actor_id", actor.UserID.String()),
			zap.String("review_id", id),
			zap.String("reason", string(decision.Reason)),
		)
		return reviewerrors.ErrReviewNotAllowed
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete performance review failed", zap.String("review_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("performance review deleted", zap.String("review_id", id))
	return nil
}

func (s *service) ListSelf(ctx context.Context, actorID, period string) ([]ReviewListItem, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return nil, apperror.ErrProfileNotAvailable
	}

	reviews, err := s.repo.FindByEmployee(ctx, subjectID, period)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewListItem, len(reviews))
	for i, pr := range reviews {
		items[i] = ReviewListItem{
			ID:         pr.ID.String(),
			Period:     pr.Period,
			Rating:     pr.Rating,
			Review:     pr.Review,
			ReviewerID: pr.ReviewerID.String(),
			CreatedAt:  pr.CreatedAt.Format(time.RFC3339),
		}
	}
	return items, nil
}

func (s *service) Statistics(ctx context.Context, employeeID string) (StatisticsResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return StatisticsResponse{}, reviewerrors.ErrInvalidEmployeeID
	}

	reviews, err := s.repo.FindByEmployee(ctx, id, "")
	if err != nil {
		return StatisticsResponse{}, err
	}
	return computeStatistics(reviews), nil
}

func (s *service) YearlyChart(ctx context.Context, employeeID string, year int) ([]ChartPoint, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, reviewerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2100 {
		return nil, reviewerrors.ErrInvalidYear
	}

	reviews, err := s.repo.FindByEmployee(ctx, id, "")
	if err != nil {
		return nil, err
	}
	return computeYearlyChart(reviews, year), nil
}

func (s *service) Trend(ctx context.Context, employeeID string, window int) (TrendResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return TrendResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	if window < 2 {
		window = defaultTrendWindow
	}

	reviews, err := s.repo.FindRecent(ctx, id, window)
	if err != nil {
		return TrendResponse{}, err
	}
	return computeTrend(reviews), nil
}

func (s *service) findReview(ctx context.Context, id string) (*PerformanceReview, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reviewerrors.ErrInvalidReviewID
	}

	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reviewerrors.ErrReviewNotFound
		}
		return nil, err
	}
	return pr, nil
}

func mapToResponse(pr PerformanceReview) ReviewResponse {
	return ReviewResponse{
		ID:         pr.ID.String(),
		EmployeeID: pr.EmployeeID.String(),
		ReviewerID: pr.ReviewerID.String(),
		Period:     pr.Period,
		Rating:     pr.Rating,
		Review:     pr.Review,
		CreatedAt:  pr.CreatedAt.Format(time.RFC3339),
	}
}
