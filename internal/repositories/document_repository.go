package repositories

import (
	"database/sql"
	"fmt"

	"github.com/BornToCode265/ADIS/internal/models"
)

type DocumentRepository interface {
	Create(d *models.Document) error
	ListPublic() ([]*models.Document, error)
}

type documentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{DB: db}
}

func (r *documentRepository) Create(d *models.Document) error {
	const q = `
		INSERT INTO documents (title, file_name, file_path, file_size, file_type, description, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		d.Title, d.FileName, d.FilePath, d.FileSize, d.FileType, d.Description, d.IsPublic,
	).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListPublic() ([]*models.Document, error) {
	const q = `
		SELECT id, title, file_name, file_path, file_size, file_type, description, is_public, created_at
		FROM documents
		WHERE is_public = TRUE
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(
			&d.ID, &d.Title, &d.FileName, &d.FilePath, &d.FileSize,
			&d.FileType, &d.Description, &d.IsPublic, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
