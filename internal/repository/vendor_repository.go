package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/pkg/database"
)

const uniqueViolation = "23505"

const vendorColumns = `id, email_address, password_hash, full_name, business_name, business_category,
	phone_number, business_reg_number, store_name, business_address, tax_id_number, verified,
	created_at, updated_at`

// vendorRepository implements VendorRepository on Postgres
type vendorRepository struct {
	db *database.Postgres
}

// NewVendorRepository creates a Postgres vendor repository
func NewVendorRepository(db *database.Postgres) VendorRepository {
	return &vendorRepository{db: db}
}

// Create inserts a vendor, assigning an id and timestamps when missing
func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	now := time.Now()
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	vendor.UpdatedAt = now

	_, err := r.db.DB.ExecContext(ctx, query,
		vendor.ID,
		vendor.EmailAddress,
		vendor.PasswordHash,
		vendor.FullName,
		vendor.BusinessName,
		vendor.BusinessCategory,
		vendor.PhoneNumber,
		vendor.BusinessRegNumber,
		vendor.StoreName,
		vendor.BusinessAddress,
		vendor.TaxIDNumber,
		vendor.Verified,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vendor with email %s already exists: %w", vendor.EmailAddress, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	return nil
}

// GetByEmail retrieves a vendor by email
func (r *vendorRepository) GetByEmail(ctx context.Context, email string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE email_address = $1`

	vendor, err := scanVendor(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vendor with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vendor by email: %w", err)
	}
	return vendor, nil
}

// GetByID retrieves a vendor by ID
func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	vendor, err := scanVendor(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vendor with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vendor by id: %w", err)
	}
	return vendor, nil
}

// Update overwrites the mutable vendor fields
func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		UPDATE vendors
		SET email_address = $2, password_hash = $3, full_name = $4, phone_number = $5,
			business_address = $6, store_name = $7, verified = $8, updated_at = $9
		WHERE id = $1
	`

	vendor.UpdatedAt = time.Now()
	result, err := r.db.DB.ExecContext(ctx, query,
		vendor.ID,
		vendor.EmailAddress,
		vendor.PasswordHash,
		vendor.FullName,
		vendor.PhoneNumber,
		vendor.BusinessAddress,
		vendor.StoreName,
		vendor.Verified,
		vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vendor with email %s already exists: %w", vendor.EmailAddress, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to update vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vendor with id %s not found: %w", vendor.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a vendor; its documents go with it through the foreign key
func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vendor with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

func scanVendor(row *sql.Row) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	err := row.Scan(
		&v.ID,
		&v.EmailAddress,
		&v.PasswordHash,
		&v.FullName,
		&v.BusinessName,
		&v.BusinessCategory,
		&v.PhoneNumber,
		&v.BusinessRegNumber,
		&v.StoreName,
		&v.BusinessAddress,
		&v.TaxIDNumber,
		&v.Verified,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// documentRepository implements DocumentRepository on Postgres
type documentRepository struct {
	db *database.Postgres
}

// NewDocumentRepository creates a Postgres document repository
func NewDocumentRepository(db *database.Postgres) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO vendor_documents (vendor_id, kind, filename, content_type, size)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.DB.ExecContext(ctx, query, doc.VendorID, doc.Kind, doc.Filename, doc.ContentType, doc.Size); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Document, error) {
	query := `
		SELECT vendor_id, kind, filename, content_type, size
		FROM vendor_documents
		WHERE vendor_id = $1
		ORDER BY id
	`

	rows, err := r.db.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc := &domain.Document{}
		if err := rows.Scan(&doc.VendorID, &doc.Kind, &doc.Filename, &doc.ContentType, &doc.Size); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

func (r *documentRepository) DeleteByVendor(ctx context.Context, vendorID string) error {
	if _, err := r.db.DB.ExecContext(ctx, `DELETE FROM vendor_documents WHERE vendor_id = $1`, vendorID); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
