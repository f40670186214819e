package ports

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
)

type IAuthRepo interface {
	// CreateUser inserts the user and its empty profile in one transaction.
	CreateUser(ctx context.Context, user model.User, profile model.Profile) (string, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

type IProfileRepo interface {
	GetByUserID(ctx context.Context, userID string) (model.Profile, error)
	Update(ctx context.Context, p model.Profile) (model.Profile, error)
}

type IKycRepo interface {
	// Upsert replaces the document row for (user_id, document_type) and
	// resets its status to pending.
	Upsert(ctx context.Context, doc model.KycDocument) (model.KycDocument, error)
	ListForUser(ctx context.Context, userID string) ([]model.KycDocument, error)
}

type IAuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

type IProfileService interface {
	Me(ctx context.Context, userID string) (dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
}

type IKycService interface {
	Submit(ctx context.Context, userID string, req dto.KycSubmitRequest) (dto.KycDocumentResponse, error)
	Status(ctx context.Context, userID string) (dto.KycStatusResponse, error)
}
