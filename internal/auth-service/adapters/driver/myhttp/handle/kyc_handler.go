package handle

import (
	"io"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

// maxKycFormSize caps the multipart form, file included.
const maxKycFormSize = 12 << 20

type KycHandler struct {
	kycService ports.IKycService
	log        mylogger.Logger
}

func NewKycHandler(ks ports.IKycService, log mylogger.Logger) *KycHandler {
	return &KycHandler{
		kycService: ks,
		log:        log,
	}
}

func (kh *KycHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxKycFormSize); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		req := dto.KycSubmitRequest{
			DocumentType:   r.FormValue("document_type"),
			DocumentNumber: r.FormValue("document_number"),
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				JsonError(w, http.StatusBadRequest, err)
				return
			}
			req.File = data
			req.FileName = header.Filename
			req.FileMime = header.Header.Get("Content-Type")
		}

		res, err := kh.kycService.Submit(r.Context(), userID(r), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (kh *KycHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := kh.kycService.Status(r.Context(), userID(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
