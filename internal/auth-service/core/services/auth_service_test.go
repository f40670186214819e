package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func testLogger() mylogger.Logger {
	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		panic(err)
	}
	return log
}

func testConfig() *config.Config {
	return &config.Config{App: &config.Appconfig{JwtSecret: testSecret}}
}

func strPtr(s string) *string { return &s }

type mockAuthRepo struct {
	createUserFn func(ctx context.Context, user model.User, profile model.Profile) (string, error)
	getByEmailFn func(ctx context.Context, email string) (model.User, error)
	getByIDFn    func(ctx context.Context, id string) (model.User, error)
}

func (m *mockAuthRepo) CreateUser(ctx context.Context, user model.User, profile model.Profile) (string, error) {
	return m.createUserFn(ctx, user, profile)
}

func (m *mockAuthRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return m.getByIDFn(ctx, id)
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     strPtr("fatou@example.com"),
		Password:  strPtr("s3cret-enough"),
		FirstName: "Fatou",
		LastName:  "Diop",
		Phone:     "+221770000000",
		Role:      strPtr(model.RoleClient),
	}
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	var saved model.User
	repo := &mockAuthRepo{
		createUserFn: func(ctx context.Context, user model.User, profile model.Profile) (string, error) {
			saved = user
			return "user-1", nil
		},
	}

	svc := NewAuthService(context.Background(), testConfig(), testLogger(), repo)

	res, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if string(saved.PasswordHash) == "s3cret-enough" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword(saved.PasswordHash, []byte("s3cret-enough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "user-1" || claims["role"] != model.RoleClient {
		t.Errorf("claims = %v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := &mockAuthRepo{
		createUserFn: func(ctx context.Context, user model.User, profile model.Profile) (string, error) {
			t.Fatal("invalid request reached the repository")
			return "", nil
		},
	}
	svc := NewAuthService(context.Background(), testConfig(), testLogger(), repo)

	cases := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
		want   error
	}{
		{"missing email", func(r *dto.RegisterRequest) { r.Email = nil }, ErrFieldIsEmpty},
		{"email without at", func(r *dto.RegisterRequest) { r.Email = strPtr("not-an-email") }, ErrBadEmail},
		{"short password", func(r *dto.RegisterRequest) { r.Password = strPtr("short") }, ErrBadPassword},
		{"unknown role", func(r *dto.RegisterRequest) { r.Role = strPtr("admin") }, ErrUnknownRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.mutate(&req)
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockAuthRepo{
		createUserFn: func(ctx context.Context, user model.User, profile model.Profile) (string, error) {
			return "", myerrors.ErrEmailRegistered
		},
	}
	svc := NewAuthService(context.Background(), testConfig(), testLogger(), repo)

	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, myerrors.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-enough"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockAuthRepo{
		getByEmailFn: func(ctx context.Context, email string) (model.User, error) {
			if email != "fatou@example.com" {
				return model.User{}, myerrors.ErrUnknownEmail
			}
			return model.User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: hash,
				Role:         model.RoleClient,
			}, nil
		},
	}
	svc := NewAuthService(context.Background(), testConfig(), testLogger(), repo)

	res, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    strPtr("fatou@example.com"),
		Password: strPtr("s3cret-enough"),
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.UserID != "user-1" || res.AccessToken == "" {
		t.Errorf("response = %+v", res)
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    strPtr("fatou@example.com"),
		Password: strPtr("wrong-password"),
	})
	if !errors.Is(err, myerrors.ErrWrongPassword) {
		t.Fatalf("wrong password: err = %v, want ErrWrongPassword", err)
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    strPtr("nobody@example.com"),
		Password: strPtr("s3cret-enough"),
	})
	if !errors.Is(err, myerrors.ErrUnknownEmail) {
		t.Fatalf("unknown email: err = %v, want ErrUnknownEmail", err)
	}
}
