package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type ExpeditionService struct {
	ctx            context.Context
	mylog          mylogger.Logger
	expeditionRepo ports.IExpeditionRepo
}

func NewExpeditionService(ctx context.Context, mylog mylogger.Logger, expeditionRepo ports.IExpeditionRepo) ports.IExpeditionService {
	return &ExpeditionService{
		ctx:            ctx,
		mylog:          mylog,
		expeditionRepo: expeditionRepo,
	}
}

func (es *ExpeditionService) Create(clientID string, req dto.ExpeditionCreateRequest) (dto.ExpeditionResponse, error) {
	log := es.mylog.Action("CreateExpedition")

	if err := validateExpeditionRequest(req); err != nil {
		return dto.ExpeditionResponse{}, err
	}

	preferred, err := parseDate(req.PreferredDate)
	if err != nil {
		return dto.ExpeditionResponse{}, err
	}

	m := model.Expedition{
		ClientID:        clientID,
		Title:           *req.Title,
		ContentType:     *req.ContentType,
		Description:     req.Description,
		WeightKg:        *req.WeightKg,
		DimensionsCm:    req.DimensionsCm,
		DepartureCity:   *req.DepartureCity,
		DestinationCity: *req.DestinationCity,
		PreferredDate:   preferred,
		TransportType:   req.TransportType,
		MaxBudget:       req.MaxBudget,
		Photos:          req.Photos,
		Status:          model.StatusPending,
	}

	ctx, cancel := context.WithTimeout(es.ctx, time.Second*15)
	defer cancel()

	created, err := es.expeditionRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create expedition", err)
		return dto.ExpeditionResponse{}, err
	}

	log.Info("expedition created", "expedition_id", created.ID, "weight_kg", created.WeightKg)
	return toExpeditionResponse(created), nil
}

func (es *ExpeditionService) Get(id string) (dto.ExpeditionResponse, error) {
	ctx, cancel := context.WithTimeout(es.ctx, time.Second*15)
	defer cancel()

	m, err := es.expeditionRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ExpeditionResponse{}, err
	}
	return toExpeditionResponse(m), nil
}

func (es *ExpeditionService) List(q dto.ListQuery) (dto.ExpeditionListResponse, error) {
	ctx, cancel := context.WithTimeout(es.ctx, time.Second*15)
	defer cancel()

	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	list, next, err := es.expeditionRepo.List(ctx, q)
	if err != nil {
		es.mylog.Action("ListExpeditions").Error("cannot list expeditions", err)
		return dto.ExpeditionListResponse{}, err
	}

	res := dto.ExpeditionListResponse{NextCursor: next}
	for _, m := range list {
		res.Expeditions = append(res.Expeditions, toExpeditionResponse(m))
	}
	return res, nil
}

func (es *ExpeditionService) Update(clientID, id string, req dto.ExpeditionUpdateRequest) (dto.ExpeditionResponse, error) {
	log := es.mylog.Action("UpdateExpedition")

	ctx, cancel := context.WithTimeout(es.ctx, time.Second*15)
	defer cancel()

	m, err := es.expeditionRepo.GetByID(ctx, id)
	if err != nil {
		return dto.ExpeditionResponse{}, err
	}
	if m.ClientID != clientID {
		return dto.ExpeditionResponse{}, fmt.Errorf("expedition %s: not owned by caller", id)
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.WeightKg != nil {
		if *req.WeightKg <= 0 {
			return dto.ExpeditionResponse{}, ErrInvalidWeight
		}
		m.WeightKg = *req.WeightKg
	}
	if req.DimensionsCm != nil {
		m.DimensionsCm = *req.DimensionsCm
	}
	if req.PreferredDate != nil {
		preferred, err := parseDate(*req.PreferredDate)
		if err != nil {
			return dto.ExpeditionResponse{}, err
		}
		m.PreferredDate = preferred
	}
	if req.TransportType != nil {
		if err := validateTransportType(req.TransportType); err != nil {
			return dto.ExpeditionResponse{}, err
		}
		m.TransportType = *req.TransportType
	}
	if req.MaxBudget != nil {
		m.MaxBudget = *req.MaxBudget
	}

	updated, err := es.expeditionRepo.Update(ctx, m)
	if err != nil {
		log.Error("cannot update expedition", err, "expedition_id", id)
		return dto.ExpeditionResponse{}, err
	}

	log.Info("expedition updated", "expedition_id", id)
	return toExpeditionResponse(updated), nil
}

func (es *ExpeditionService) Delete(clientID, id string) error {
	ctx, cancel := context.WithTimeout(es.ctx, time.Second*15)
	defer cancel()

	if err := es.expeditionRepo.Delete(ctx, id, clientID); err != nil {
		es.mylog.Action("DeleteExpedition").Error("cannot delete expedition", err, "expedition_id", id)
		return err
	}
	return nil
}

func validateExpeditionRequest(req dto.ExpeditionCreateRequest) error {
	if req.Title == nil || *req.Title == "" {
		return fmt.Errorf("title: %w", ErrEmptyField)
	}
	if req.ContentType == nil || *req.ContentType == "" {
		return fmt.Errorf("content_type: %w", ErrEmptyField)
	}
	if req.WeightKg == nil {
		return fmt.Errorf("weight_kg: %w", ErrEmptyField)
	}
	if *req.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if err := validateCity("departure_city", req.DepartureCity); err != nil {
		return err
	}
	if err := validateCity("destination_city", req.DestinationCity); err != nil {
		return err
	}
	if req.TransportType != "" && !model.AllowedTransportTypes[req.TransportType] {
		return fmt.Errorf("transport_type %q: %w", req.TransportType, ErrUnknownStatus)
	}
	return nil
}

func toExpeditionResponse(m model.Expedition) dto.ExpeditionResponse {
	return dto.ExpeditionResponse{
		ID:              m.ID,
		ClientID:        m.ClientID,
		Title:           m.Title,
		ContentType:     m.ContentType,
		Description:     m.Description,
		WeightKg:        m.WeightKg,
		DimensionsCm:    m.DimensionsCm,
		DepartureCity:   m.DepartureCity,
		DestinationCity: m.DestinationCity,
		PreferredDate:   formatTime(m.PreferredDate),
		TransportType:   m.TransportType,
		MaxBudget:       m.MaxBudget,
		Photos:          m.Photos,
		Status:          m.Status,
		CreatedAt:       formatTime(m.CreatedAt),
	}
}
