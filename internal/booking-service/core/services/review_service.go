package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

const maxCommentLen = 2000

type ReviewService struct {
	ctx             context.Context
	mylog           mylogger.Logger
	reviewRepo      ports.IReviewRepo
	reservationRepo ports.IReservationRepo
	notifier        ports.INotificationService
}

func NewReviewService(
	ctx context.Context,
	mylog mylogger.Logger,
	reviewRepo ports.IReviewRepo,
	reservationRepo ports.IReservationRepo,
	notifier ports.INotificationService,
) ports.IReviewService {
	return &ReviewService{
		ctx:             ctx,
		mylog:           mylog,
		reviewRepo:      reviewRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
	}
}

func (rs *ReviewService) Create(reviewerID, reservationID string, req dto.ReviewCreateRequest) (dto.ReviewResponse, error) {
	log := rs.mylog.Action("CreateReview")

	if req.Rating == nil {
		return dto.ReviewResponse{}, fmt.Errorf("rating: %w", ErrEmptyField)
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		return dto.ReviewResponse{}, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if len(comment) > maxCommentLen {
		return dto.ReviewResponse{}, fmt.Errorf("comment: maximum %d characters allowed", maxCommentLen)
	}

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	reservation, err := rs.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return dto.ReviewResponse{}, err
	}
	if reservation.Status != model.StatusDelivered {
		return dto.ReviewResponse{}, myerrors.ErrNotDelivered
	}

	// Each party reviews the other one, nobody else.
	var reviewedID string
	switch reviewerID {
	case reservation.ClientID:
		reviewedID = reservation.TransporteurID
	case reservation.TransporteurID:
		reviewedID = reservation.ClientID
	default:
		return dto.ReviewResponse{}, myerrors.ErrForbidden
	}

	m := model.Review{
		ReservationID: reservationID,
		ReviewerID:    reviewerID,
		ReviewedID:    reviewedID,
		Rating:        *req.Rating,
		Comment:       comment,
	}

	created, err := rs.reviewRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create review", err, "reservation_id", reservationID)
		return dto.ReviewResponse{}, err
	}

	rs.notifier.Notify(reviewedID, "review_received",
		"Nouvel avis reçu",
		fmt.Sprintf("Vous avez reçu un avis %d/5 pour la livraison %s.", created.Rating, reservation.TrackingCode),
		map[string]any{"reservation_id": reservationID, "review_id": created.ID})

	log.Info("review created", "review_id", created.ID, "rating", created.Rating)
	return toReviewResponse(created), nil
}

func (rs *ReviewService) ListForUser(reviewedID string) ([]dto.ReviewResponse, error) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	list, err := rs.reviewRepo.ListForUser(ctx, reviewedID, 50)
	if err != nil {
		rs.mylog.Action("ListReviews").Error("cannot list reviews", err, "user_id", reviewedID)
		return nil, err
	}

	res := make([]dto.ReviewResponse, 0, len(list))
	for _, m := range list {
		res = append(res, toReviewResponse(m))
	}
	return res, nil
}

func toReviewResponse(m model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		ReviewerID:    m.ReviewerID,
		ReviewedID:    m.ReviewedID,
		Rating:        m.Rating,
		Comment:       m.Comment,
		CreatedAt:     formatTime(m.CreatedAt),
	}
}
