package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
)

type mockKycRepo struct {
	upsertFn func(ctx context.Context, doc model.KycDocument) (model.KycDocument, error)
	docs     []model.KycDocument
}

func (m *mockKycRepo) Upsert(ctx context.Context, doc model.KycDocument) (model.KycDocument, error) {
	return m.upsertFn(ctx, doc)
}

func (m *mockKycRepo) ListForUser(ctx context.Context, userID string) ([]model.KycDocument, error) {
	return m.docs, nil
}

type mockProfileRepo struct {
	profile model.Profile
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (model.Profile, error) {
	return m.profile, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p model.Profile) (model.Profile, error) {
	return p, nil
}

type mockFileStore struct {
	uploads int
}

func (m *mockFileStore) Upload(ctx context.Context, bucket, path string, data []byte) (string, error) {
	m.uploads++
	return "http://files.local/" + bucket + "/" + path, nil
}

func (m *mockFileStore) PublicURL(bucket, path string) string {
	return "http://files.local/" + bucket + "/" + path
}

func kycRequest() dto.KycSubmitRequest {
	return dto.KycSubmitRequest{
		DocumentType:   "passport",
		DocumentNumber: "AB123456",
		File:           []byte("jpeg-bytes"),
		FileName:       "passport.jpg",
		FileMime:       "image/jpeg",
	}
}

func TestSubmitKycDocument(t *testing.T) {
	var upserted model.KycDocument
	kycRepo := &mockKycRepo{
		upsertFn: func(ctx context.Context, doc model.KycDocument) (model.KycDocument, error) {
			upserted = doc
			doc.ID = "doc-1"
			return doc, nil
		},
	}
	files := &mockFileStore{}

	svc := NewKycService(context.Background(), testLogger(), kycRepo, &mockProfileRepo{}, files)

	res, err := svc.Submit(context.Background(), "user-1", kycRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if files.uploads != 1 {
		t.Error("document file was not uploaded")
	}
	if upserted.Status != model.KycPending {
		t.Errorf("status = %q, want pending", upserted.Status)
	}
	if res.FileURL == "" {
		t.Error("response carries no file url")
	}
}

func TestSubmitKycValidation(t *testing.T) {
	svc := NewKycService(context.Background(), testLogger(),
		&mockKycRepo{}, &mockProfileRepo{}, &mockFileStore{})

	cases := []struct {
		name   string
		mutate func(*dto.KycSubmitRequest)
		want   error
	}{
		{"missing type", func(r *dto.KycSubmitRequest) { r.DocumentType = "" }, ErrFieldIsEmpty},
		{"missing number", func(r *dto.KycSubmitRequest) { r.DocumentNumber = " " }, ErrFieldIsEmpty},
		{"missing file", func(r *dto.KycSubmitRequest) { r.File = nil }, ErrFieldIsEmpty},
		{"oversized file", func(r *dto.KycSubmitRequest) { r.File = bytes.Repeat([]byte("x"), maxKycFileLen+1) }, ErrFileTooLarge},
		{"wrong mime", func(r *dto.KycSubmitRequest) { r.FileMime = "video/mp4" }, ErrBadFileType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := kycRequest()
			tc.mutate(&req)
			if _, err := svc.Submit(context.Background(), "user-1", req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestKycStatusAggregation(t *testing.T) {
	cases := []struct {
		name     string
		verified bool
		docs     []model.KycDocument
		want     string
	}{
		{"no documents", false, nil, "unverified"},
		{"pending wins", false, []model.KycDocument{
			{Status: model.KycRejected},
			{Status: model.KycPending},
		}, model.KycPending},
		{"all rejected", false, []model.KycDocument{
			{Status: model.KycRejected},
		}, model.KycRejected},
		{"verified profile wins", true, []model.KycDocument{
			{Status: model.KycRejected},
		}, model.KycVerified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewKycService(context.Background(), testLogger(),
				&mockKycRepo{docs: tc.docs},
				&mockProfileRepo{profile: model.Profile{IsVerified: tc.verified}},
				&mockFileStore{})

			res, err := svc.Status(context.Background(), "user-1")
			if err != nil {
				t.Fatalf("Status: %v", err)
			}
			if res.Status != tc.want {
				t.Errorf("status = %q, want %q", res.Status, tc.want)
			}
		})
	}
}
