package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/storage"
)

const (
	kycBucket     = "kyc-documents"
	maxKycFileLen = 10 << 20 // 10MB
)

type KycService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	kycRepo     ports.IKycRepo
	profileRepo ports.IProfileRepo
	files       storage.FileStore
}

func NewKycService(ctx context.Context, mylog mylogger.Logger, kycRepo ports.IKycRepo, profileRepo ports.IProfileRepo, files storage.FileStore) ports.IKycService {
	return &KycService{
		ctx:         ctx,
		mylog:       mylog,
		kycRepo:     kycRepo,
		profileRepo: profileRepo,
		files:       files,
	}
}

func (ks *KycService) Submit(ctx context.Context, userID string, req dto.KycSubmitRequest) (dto.KycDocumentResponse, error) {
	log := ks.mylog.Action("SubmitKycDocument")

	if strings.TrimSpace(req.DocumentType) == "" {
		return dto.KycDocumentResponse{}, fmt.Errorf("document_type: %w", ErrFieldIsEmpty)
	}
	if strings.TrimSpace(req.DocumentNumber) == "" {
		return dto.KycDocumentResponse{}, fmt.Errorf("document_number: %w", ErrFieldIsEmpty)
	}
	if len(req.File) == 0 {
		return dto.KycDocumentResponse{}, fmt.Errorf("file: %w", ErrFieldIsEmpty)
	}
	if len(req.File) > maxKycFileLen {
		return dto.KycDocumentResponse{}, ErrFileTooLarge
	}
	if !strings.HasPrefix(req.FileMime, "image/") && req.FileMime != "application/pdf" {
		return dto.KycDocumentResponse{}, ErrBadFileType
	}

	ext := filepath.Ext(req.FileName)
	path := fmt.Sprintf("%s/kyc/%s_%d%s", userID, req.DocumentType, time.Now().UnixMilli(), ext)
	url, err := ks.files.Upload(ctx, kycBucket, path, req.File)
	if err != nil {
		log.Error("cannot upload kyc document", err, "user_id", userID)
		return dto.KycDocumentResponse{}, err
	}

	doc, err := ks.kycRepo.Upsert(ctx, model.KycDocument{
		UserID:         userID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		FileURL:        url,
		Status:         model.KycPending,
	})
	if err != nil {
		log.Error("cannot store kyc document", err, "user_id", userID)
		return dto.KycDocumentResponse{}, err
	}

	log.Info("kyc document submitted", "user_id", userID, "document_type", doc.DocumentType)
	return toKycResponse(doc), nil
}

func (ks *KycService) Status(ctx context.Context, userID string) (dto.KycStatusResponse, error) {
	docs, err := ks.kycRepo.ListForUser(ctx, userID)
	if err != nil {
		return dto.KycStatusResponse{}, err
	}
	profile, err := ks.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return dto.KycStatusResponse{}, err
	}

	res := dto.KycStatusResponse{Status: aggregateStatus(profile, docs)}
	for _, d := range docs {
		res.Documents = append(res.Documents, toKycResponse(d))
	}
	return res, nil
}

// aggregateStatus folds the document states into one verification state. A
// verified profile wins, a pending document beats a rejected one.
func aggregateStatus(profile model.Profile, docs []model.KycDocument) string {
	if profile.IsVerified {
		return model.KycVerified
	}
	status := "unverified"
	for _, d := range docs {
		switch d.Status {
		case model.KycPending:
			return model.KycPending
		case model.KycRejected:
			status = model.KycRejected
		}
	}
	return status
}

func toKycResponse(d model.KycDocument) dto.KycDocumentResponse {
	return dto.KycDocumentResponse{
		ID:             d.ID,
		DocumentType:   d.DocumentType,
		DocumentNumber: d.DocumentNumber,
		FileURL:        d.FileURL,
		Status:         d.Status,
		CreatedAt:      formatTime(d.CreatedAt),
	}
}
