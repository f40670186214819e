package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type AuthService struct {
	ctx      context.Context
	cfg      *config.Config
	mylog    mylogger.Logger
	authRepo ports.IAuthRepo
}

func NewAuthService(ctx context.Context, cfg *config.Config, mylog mylogger.Logger, authRepo ports.IAuthRepo) ports.IAuthService {
	return &AuthService{
		ctx:      ctx,
		cfg:      cfg,
		mylog:    mylog,
		authRepo: authRepo,
	}
}

func (as *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	log := as.mylog.Action("Register")

	if req.Email == nil || req.Password == nil || req.Role == nil {
		return dto.AuthResponse{}, fmt.Errorf("email, password and role are required: %w", ErrFieldIsEmpty)
	}
	if err := validateEmail(*req.Email); err != nil {
		return dto.AuthResponse{}, err
	}
	if err := validatePassword(*req.Password); err != nil {
		return dto.AuthResponse{}, err
	}
	if err := validateRole(*req.Role); err != nil {
		return dto.AuthResponse{}, err
	}

	hashed, err := hashPassword(*req.Password)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Email:        *req.Email,
		PasswordHash: hashed,
		Role:         *req.Role,
	}
	profile := model.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	id, err := as.authRepo.CreateUser(ctx, user, profile)
	if err != nil {
		if errors.Is(err, myerrors.ErrEmailRegistered) {
			log.Warn("registration rejected, email already registered")
			return dto.AuthResponse{}, err
		}
		log.Error("cannot save user", err)
		return dto.AuthResponse{}, err
	}

	token, err := issueToken(as.cfg.App.JwtSecret, id, *req.Email, *req.Role)
	if err != nil {
		log.Error("cannot sign jwt token", err)
		return dto.AuthResponse{}, err
	}

	log.Info("user registered", "user_id", id, "role", *req.Role)
	return dto.AuthResponse{
		UserID:      id,
		Email:       *req.Email,
		Role:        *req.Role,
		AccessToken: token,
	}, nil
}

func (as *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	log := as.mylog.Action("Login")

	if req.Email == nil || req.Password == nil {
		return dto.AuthResponse{}, fmt.Errorf("email and password are required: %w", ErrFieldIsEmpty)
	}

	user, err := as.authRepo.GetByEmail(ctx, *req.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	if !checkPassword(user.PasswordHash, *req.Password) {
		log.Warn("login rejected, wrong password", "user_id", user.ID)
		return dto.AuthResponse{}, myerrors.ErrWrongPassword
	}

	token, err := issueToken(as.cfg.App.JwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error("cannot sign jwt token", err)
		return dto.AuthResponse{}, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return dto.AuthResponse{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		AccessToken: token,
	}, nil
}
