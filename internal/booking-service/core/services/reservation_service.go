package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/storage"

	"github.com/google/uuid"
)

const (
	RoleClient       = "client"
	RoleTransporteur = "transporteur"

	proofBucket      = "delivery-proofs"
	maxProofPhotoLen = 10 << 20 // 10MB
)

type ReservationService struct {
	ctx             context.Context
	mylog           mylogger.Logger
	reservationRepo ports.IReservationRepo
	expeditionRepo  ports.IExpeditionRepo
	tripRepo        ports.ITripRepo
	profileGuard    ports.IProfileGuard
	broker          ports.IEventBroker
	notifier        ports.INotificationService
	files           storage.FileStore
}

func NewReservationService(
	ctx context.Context,
	mylog mylogger.Logger,
	reservationRepo ports.IReservationRepo,
	expeditionRepo ports.IExpeditionRepo,
	tripRepo ports.ITripRepo,
	profileGuard ports.IProfileGuard,
	broker ports.IEventBroker,
	notifier ports.INotificationService,
	files storage.FileStore,
) ports.IReservationService {
	return &ReservationService{
		ctx:             ctx,
		mylog:           mylog,
		reservationRepo: reservationRepo,
		expeditionRepo:  expeditionRepo,
		tripRepo:        tripRepo,
		profileGuard:    profileGuard,
		broker:          broker,
		notifier:        notifier,
		files:           files,
	}
}

// Book builds a reservation from a trip and one of the caller's expeditions.
// total_price = price_per_kg * weight_kg, computed once here and never
// re-derived afterwards.
func (rs *ReservationService) Book(clientID string, req dto.ReservationCreateRequest) (dto.ReservationResponse, error) {
	log := rs.mylog.Action("BookReservation")

	if err := validateBookingRequest(req); err != nil {
		return dto.ReservationResponse{}, err
	}

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	expedition, err := rs.expeditionRepo.GetByID(ctx, *req.ExpeditionID)
	if err != nil {
		log.Error("cannot load expedition", err, "expedition_id", *req.ExpeditionID)
		return dto.ReservationResponse{}, err
	}
	if expedition.ClientID != clientID {
		return dto.ReservationResponse{}, fmt.Errorf("expedition %s: %w", expedition.ID, myerrors.ErrForbidden)
	}

	trip, err := rs.tripRepo.GetByID(ctx, *req.TripID)
	if err != nil {
		log.Error("cannot load trip", err, "trip_id", *req.TripID)
		return dto.ReservationResponse{}, err
	}
	if trip.Status != model.TripOpen {
		return dto.ReservationResponse{}, myerrors.ErrTripNotOpen
	}

	m := model.Reservation{
		ExpeditionID:    expedition.ID,
		TripID:          trip.ID,
		ClientID:        clientID,
		TransporteurID:  trip.TransporteurID,
		TotalPrice:      trip.PricePerKg * expedition.WeightKg,
		PickupAddress:   trip.DepartureCity,
		DeliveryAddress: trip.DestinationCity,
		PickupDate:      trip.DepartureDate,
		DeliveryDate:    trip.ArrivalDate,
		TrackingCode:    generateTrackingCode(),
		Status:          model.StatusPending,
	}

	log.Info("booking reservation",
		"expedition_id", expedition.ID,
		"trip_id", trip.ID,
		"total_price", m.TotalPrice,
		"weight_kg", expedition.WeightKg,
	)

	// Book re-checks trip status and capacity inside the transaction, so a
	// trip that filled up between listing and booking is rejected here.
	created, err := rs.reservationRepo.Book(ctx, m, expedition.WeightKg)
	if err != nil {
		log.Error("cannot book reservation", err)
		return dto.ReservationResponse{}, err
	}

	rs.notifier.Notify(trip.TransporteurID, "reservation_created",
		"Nouvelle réservation",
		fmt.Sprintf("Un client a réservé votre trajet %s → %s", trip.DepartureCity, trip.DestinationCity),
		map[string]any{"reservation_id": created.ID},
	)
	rs.publishStatus(created)

	log.Info("reservation booked", "reservation_id", created.ID, "tracking_code", created.TrackingCode)
	return toReservationResponse(created), nil
}

func (rs *ReservationService) Get(userID, id string) (dto.ReservationResponse, error) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	m, err := rs.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ReservationResponse{}, err
	}
	if m.ClientID != userID && m.TransporteurID != userID {
		return dto.ReservationResponse{}, myerrors.ErrForbidden
	}
	return toReservationResponse(m), nil
}

func (rs *ReservationService) ListForUser(userID, role string) ([]dto.ReservationResponse, error) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	list, err := rs.reservationRepo.ListForUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ReservationResponse, 0, len(list))
	for _, m := range list {
		res = append(res, toReservationResponse(m))
	}
	return res, nil
}

// UpdateStatus advances the state machine. Forward moves are transporteur
// only; a client may only cancel its own pending reservation. delivered is
// rejected here, it belongs to SubmitProof.
func (rs *ReservationService) UpdateStatus(userID, role, id string, req dto.ReservationStatusRequest) (dto.ReservationResponse, error) {
	log := rs.mylog.Action("UpdateReservationStatus")

	if req.Status == nil || *req.Status == "" {
		return dto.ReservationResponse{}, fmt.Errorf("status: %w", ErrEmptyField)
	}
	if req.Version == nil {
		return dto.ReservationResponse{}, fmt.Errorf("version: %w", ErrEmptyField)
	}
	target := *req.Status
	if !model.IsStatus(target) || target == model.StatusDelivered {
		return dto.ReservationResponse{}, fmt.Errorf("status %q: %w", target, myerrors.ErrBadTransition)
	}

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	m, err := rs.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ReservationResponse{}, err
	}

	if err := rs.authorizeTransition(ctx, m, userID, role, target); err != nil {
		log.Warn("transition refused", "reservation_id", id, "from", m.Status, "to", target, "role", role)
		return dto.ReservationResponse{}, err
	}
	if !model.CanTransition(m.Status, target) {
		return dto.ReservationResponse{}, fmt.Errorf("%s -> %s: %w", m.Status, target, myerrors.ErrBadTransition)
	}

	updated, err := rs.reservationRepo.UpdateStatus(ctx, id, target, *req.Version)
	if err != nil {
		log.Error("cannot update status", err, "reservation_id", id)
		return dto.ReservationResponse{}, err
	}

	counterparty := updated.ClientID
	if userID == updated.ClientID {
		counterparty = updated.TransporteurID
	}
	rs.notifier.Notify(counterparty, "reservation_"+target,
		"Réservation mise à jour",
		fmt.Sprintf("La réservation %s est passée à %s", updated.TrackingCode, target),
		map[string]any{"reservation_id": updated.ID, "status": target},
	)
	rs.publishStatus(updated)

	log.Info("reservation status updated", "reservation_id", id, "status", target, "version", updated.Version)
	return toReservationResponse(updated), nil
}

func (rs *ReservationService) authorizeTransition(ctx context.Context, m model.Reservation, userID, role, target string) error {
	switch target {
	case model.StatusCancelled:
		if userID == m.ClientID {
			if m.Status != model.StatusPending {
				return myerrors.ErrBadTransition
			}
			return nil
		}
		if userID == m.TransporteurID {
			return nil
		}
		return myerrors.ErrForbidden
	case model.StatusConfirmed:
		if userID != m.TransporteurID || role != RoleTransporteur {
			return myerrors.ErrForbidden
		}
		verified, err := rs.profileGuard.IsVerified(ctx, userID)
		if err != nil {
			return err
		}
		if !verified {
			return myerrors.ErrNotVerified
		}
		return nil
	default:
		if userID != m.TransporteurID || role != RoleTransporteur {
			return myerrors.ErrForbidden
		}
		return nil
	}
}

// SubmitProof is the only way a reservation reaches delivered. A proof
// without recipient name or photo must leave everything untouched.
func (rs *ReservationService) SubmitProof(transporteurID, id string, req dto.ProofSubmitRequest) (dto.ProofResponse, error) {
	log := rs.mylog.Action("SubmitDeliveryProof")

	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*30)
	defer cancel()

	m, err := rs.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ProofResponse{}, err
	}
	if m.TransporteurID != transporteurID {
		return dto.ProofResponse{}, myerrors.ErrForbidden
	}

	recipient := strings.TrimSpace(req.RecipientName)
	if recipient == "" {
		return dto.ProofResponse{}, fmt.Errorf("recipient name: %w", ErrEmptyField)
	}

	existing, existingErr := rs.reservationRepo.GetProof(ctx, id)
	hasExisting := existingErr == nil

	if len(req.Photo) == 0 && !hasExisting {
		return dto.ProofResponse{}, fmt.Errorf("delivery photo: %w", ErrEmptyField)
	}

	photoURL := existing.PhotoURL
	if len(req.Photo) > 0 {
		if err := validateProofPhoto(req.Photo, req.PhotoMime); err != nil {
			return dto.ProofResponse{}, err
		}
		path := fmt.Sprintf("%s/%s_%d%s", transporteurID, id, time.Now().UnixMilli(), fileExt(req.PhotoName))
		photoURL, err = rs.files.Upload(ctx, proofBucket, path, req.Photo)
		if err != nil {
			log.Error("cannot upload proof photo", err, "reservation_id", id)
			return dto.ProofResponse{}, fmt.Errorf("cannot upload photo: %w", err)
		}
	}

	proof := model.DeliveryProof{
		ReservationID:  id,
		TransporteurID: transporteurID,
		PhotoURL:       photoURL,
		RecipientName:  recipient,
		SignatureData:  req.SignatureData,
		Notes:          strings.TrimSpace(req.Notes),
		DeliveredAt:    time.Now().UTC(),
	}

	saved, updated, err := rs.reservationRepo.UpsertProofAndDeliver(ctx, proof)
	if err != nil {
		log.Error("cannot save delivery proof", err, "reservation_id", id)
		return dto.ProofResponse{}, err
	}

	rs.notifier.Notify(updated.ClientID, "delivered",
		"Colis livré !",
		"Votre colis a été livré avec succès",
		map[string]any{"reservation_id": id},
	)
	rs.publishStatus(updated)

	log.Info("delivery proof saved", "reservation_id", id, "recipient", recipient)
	return toProofResponse(saved), nil
}

func (rs *ReservationService) GetProof(userID, id string) (dto.ProofResponse, error) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*15)
	defer cancel()

	m, err := rs.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ProofResponse{}, err
	}
	if m.ClientID != userID && m.TransporteurID != userID {
		return dto.ProofResponse{}, myerrors.ErrForbidden
	}

	proof, err := rs.reservationRepo.GetProof(ctx, id)
	if err != nil {
		return dto.ProofResponse{}, err
	}
	return toProofResponse(proof), nil
}

// publishStatus pushes the advisory broker event. Failures are logged and
// swallowed: the push channel is a hint, the row is the source of truth.
func (rs *ReservationService) publishStatus(m model.Reservation) {
	ctx, cancel := context.WithTimeout(rs.ctx, time.Second*5)
	defer cancel()

	msg := messagebrokerdto.ReservationStatus{
		ReservationID:  m.ID,
		TrackingCode:   m.TrackingCode,
		Status:         m.Status,
		ClientID:       m.ClientID,
		TransporteurID: m.TransporteurID,
		Version:        m.Version,
		Timestamp:      time.Now().Format(time.RFC3339),
		CorrelationID:  uuid.NewString(),
	}
	if err := rs.broker.PublishReservationStatus(ctx, msg); err != nil {
		rs.mylog.Action("publishStatus").Error("cannot publish status event", err, "reservation_id", m.ID)
	}
}

func validateBookingRequest(req dto.ReservationCreateRequest) error {
	if req.ExpeditionID == nil || *req.ExpeditionID == "" {
		return fmt.Errorf("expedition_id: %w", ErrEmptyField)
	}
	if req.TripID == nil || *req.TripID == "" {
		return fmt.Errorf("trip_id: %w", ErrEmptyField)
	}
	return nil
}

func validateProofPhoto(data []byte, mime string) error {
	if len(data) > maxProofPhotoLen {
		return ErrPhotoTooLarge
	}
	if !strings.HasPrefix(mime, "image/") {
		return ErrPhotoNotImage
	}
	return nil
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ".jpg"
}

func generateTrackingCode() string {
	return fmt.Sprintf("GC-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:6]),
	)
}

func toReservationResponse(m model.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:              m.ID,
		ExpeditionID:    m.ExpeditionID,
		TripID:          m.TripID,
		ClientID:        m.ClientID,
		TransporteurID:  m.TransporteurID,
		TotalPrice:      m.TotalPrice,
		PickupAddress:   m.PickupAddress,
		DeliveryAddress: m.DeliveryAddress,
		PickupDate:      formatTime(m.PickupDate),
		DeliveryDate:    formatTime(m.DeliveryDate),
		TrackingCode:    m.TrackingCode,
		Status:          m.Status,
		Version:         m.Version,
		CreatedAt:       formatTime(m.CreatedAt),
	}
}

func toProofResponse(m model.DeliveryProof) dto.ProofResponse {
	return dto.ProofResponse{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		PhotoURL:      m.PhotoURL,
		RecipientName: m.RecipientName,
		SignatureData: m.SignatureData,
		Notes:         m.Notes,
		DeliveredAt:   formatTime(m.DeliveredAt),
	}
}
