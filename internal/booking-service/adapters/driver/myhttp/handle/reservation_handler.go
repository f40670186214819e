package handle

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

// maxProofFormSize bounds the multipart form of a proof submission.
const maxProofFormSize = 12 << 20

type ReservationHandler struct {
	reservationService ports.IReservationService
	log                mylogger.Logger
}

func NewReservationHandler(rs ports.IReservationService, log mylogger.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservationService: rs,
		log:                log,
	}
}

func (rh *ReservationHandler) Book() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ReservationCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := rh.reservationService.Book(userID(r), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (rh *ReservationHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := rh.reservationService.Get(userID(r), r.PathValue("reservation_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *ReservationHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := rh.reservationService.ListForUser(userID(r), userRole(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *ReservationHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ReservationStatusRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := rh.reservationService.UpdateStatus(userID(r), userRole(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (rh *ReservationHandler) SubmitProof() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxProofFormSize); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		req := dto.ProofSubmitRequest{
			RecipientName: r.FormValue("recipient_name"),
			SignatureData: r.FormValue("signature_data"),
			Notes:         r.FormValue("notes"),
		}

		if file, header, err := r.FormFile("photo"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				JsonError(w, http.StatusBadRequest, err)
				return
			}
			req.Photo = data
			req.PhotoName = header.Filename
			req.PhotoMime = header.Header.Get("Content-Type")
		}

		res, err := rh.reservationService.SubmitProof(userID(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (rh *ReservationHandler) GetProof() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := rh.reservationService.GetProof(userID(r), r.PathValue("reservation_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
