package services

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type ProfileService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	authRepo    ports.IAuthRepo
	profileRepo ports.IProfileRepo
}

func NewProfileService(ctx context.Context, mylog mylogger.Logger, authRepo ports.IAuthRepo, profileRepo ports.IProfileRepo) ports.IProfileService {
	return &ProfileService{
		ctx:         ctx,
		mylog:       mylog,
		authRepo:    authRepo,
		profileRepo: profileRepo,
	}
}

func (ps *ProfileService) Me(ctx context.Context, userID string) (dto.ProfileResponse, error) {
	user, err := ps.authRepo.GetByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return toProfileResponse(user, profile), nil
}

func (ps *ProfileService) Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	log := ps.mylog.Action("UpdateProfile")

	user, err := ps.authRepo.GetByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Whatsapp != nil {
		profile.Whatsapp = *req.Whatsapp
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	updated, err := ps.profileRepo.Update(ctx, profile)
	if err != nil {
		log.Error("cannot update profile", err, "user_id", userID)
		return dto.ProfileResponse{}, err
	}

	log.Info("profile updated", "user_id", userID)
	return toProfileResponse(user, updated), nil
}

func toProfileResponse(user model.User, p model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		Whatsapp:   p.Whatsapp,
		AvatarURL:  p.AvatarURL,
		IsVerified: p.IsVerified,
	}
}
