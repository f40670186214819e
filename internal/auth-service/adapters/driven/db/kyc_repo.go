package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type KycRepo struct {
	db *DB
}

func NewKycRepo(db *DB) ports.IKycRepo {
	return &KycRepo{db: db}
}

func (kr *KycRepo) Upsert(ctx context.Context, doc model.KycDocument) (model.KycDocument, error) {
	q := `INSERT INTO kyc_documents (user_id, document_type, document_number, file_url, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, document_type) DO UPDATE SET
			document_number = EXCLUDED.document_number,
			file_url = EXCLUDED.file_url,
			status = 'pending',
			updated_at = now()
		RETURNING id, user_id, document_type, document_number, file_url, status,
			created_at, updated_at`

	row := kr.db.pool.QueryRow(ctx, q,
		doc.UserID,
		doc.DocumentType,
		doc.DocumentNumber,
		doc.FileURL,
		doc.Status,
	)
	return scanKycDocument(row)
}

func (kr *KycRepo) ListForUser(ctx context.Context, userID string) ([]model.KycDocument, error) {
	q := `SELECT id, user_id, document_type, document_number, file_url, status,
			created_at, updated_at
		FROM kyc_documents WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := kr.db.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.KycDocument
	for rows.Next() {
		d, err := scanKycDocument(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanKycDocument(row pgx.Row) (model.KycDocument, error) {
	var d model.KycDocument
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.DocumentType,
		&d.DocumentNumber,
		&d.FileURL,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return model.KycDocument{}, err
	}
	return d, nil
}
