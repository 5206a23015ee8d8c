package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/repository"
	"github.com/prperemyshlev/seller-portal/internal/utils"
	"go.uber.org/zap"
)

// vendorService implements VendorService interface
type vendorService struct {
	repos      *repository.Repositories
	jwtManager *utils.JWTManager
	blacklist  TokenBlacklist
	orders     OrderService
	bcryptCost int
	logger     *zap.Logger
}

// NewVendorService creates a new vendor service. When orders is non-nil every new vendor gets a
// handful of demo orders.
func NewVendorService(
	repos *repository.Repositories,
	jwtManager *utils.JWTManager,
	blacklist TokenBlacklist,
	orders OrderService,
	bcryptCost int,
	logger *zap.Logger,
) VendorService {
	return &vendorService{
		repos:      repos,
		jwtManager: jwtManager,
		blacklist:  blacklist,
		orders:     orders,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates the vendor, stores document metadata and signs the vendor in
func (s *vendorService) Register(ctx context.Context, data registration.CompleteRegistrationData) (*dto.AuthData, error) {
	data.EmailAddress = utils.SanitizeEmail(data.EmailAddress)

	verr := fromFieldErrors(registration.ValidateCompleteRegistration(data))

	known, err := s.categoryExists(ctx, data.BusinessCategory)
	if err != nil {
		return nil, err
	}
	if !known {
		verr.Fields[string(registration.FieldBusinessCategory)] = MsgCategoryUnknown
	}

	if _, invalid := verr.Fields[string(registration.FieldEmailAddress)]; !invalid {
		_, err := s.repos.Vendor.GetByEmail(ctx, data.EmailAddress)
		switch {
		case err == nil:
			verr.Fields[string(registration.FieldEmailAddress)] = MsgEmailTaken
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("failed to check vendor existence: %w", err)
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	passwordHash, err := utils.HashPassword(data.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	vendor := &domain.Vendor{
		EmailAddress:      data.EmailAddress,
		PasswordHash:      passwordHash,
		FullName:          strings.TrimSpace(data.FullName),
		BusinessName:      strings.TrimSpace(data.BusinessName),
		BusinessCategory:  data.BusinessCategory,
		PhoneNumber:       registration.CanonicalizePhone(data.PhoneNumber),
		BusinessRegNumber: strings.TrimSpace(data.BusinessRegNumber),
		StoreName:         strings.TrimSpace(data.StoreName),
		BusinessAddress:   strings.TrimSpace(data.BusinessAddress),
		TaxIDNumber:       strings.TrimSpace(data.TaxIDNumber),
	}

	if err := s.repos.Vendor.Create(ctx, vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, newValidationError(string(registration.FieldEmailAddress), MsgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := s.saveDocuments(ctx, vendor.ID, data); err != nil {
		return nil, s.rollbackVendor(ctx, vendor.ID, err)
	}

	storefront := &domain.Storefront{VendorID: vendor.ID, StoreName: vendor.StoreName}
	if err := s.repos.Storefront.Save(ctx, storefront); err != nil {
		return nil, s.rollbackVendor(ctx, vendor.ID, fmt.Errorf("failed to create storefront: %w", err))
	}

	if s.orders != nil {
		if err := s.orders.SeedDemoOrders(ctx, vendor.ID); err != nil {
			s.logger.Warn("failed to seed demo orders", zap.String("vendor_id", vendor.ID), zap.Error(err))
		}
	}

	return s.authData(vendor)
}

// Login authenticates a vendor by email and password
func (s *vendorService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthData, error) {
	vendor, err := s.repos.Vendor.GetByEmail(ctx, utils.SanitizeEmail(req.EmailAddress))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnPasswordCheck(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, vendor.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.authData(vendor)
}

// Logout revokes the token for the rest of its lifetime
func (s *vendorService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	ttl := s.jwtManager.Remaining(claims)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.Add(ctx, token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ValidateToken validates a token and checks it has not been revoked
func (s *vendorService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	}

	return claims, nil
}

// GetVendor retrieves a vendor by ID
func (s *vendorService) GetVendor(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	vendor, err := s.repos.Vendor.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFound(err, "get vendor")
	}
	return vendor, nil
}

// Documents lists the verification documents uploaded at registration
func (s *vendorService) Documents(ctx context.Context, vendorID string) ([]*domain.Document, error) {
	docs, err := s.repos.Document.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []*domain.Document{}
	}
	return docs, nil
}

// UpdateProfile updates the contact details of a vendor
func (s *vendorService) UpdateProfile(ctx context.Context, vendorID string, req *dto.ProfileRequest) (*domain.Vendor, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		fields[string(registration.FieldFullName)] = registration.MsgFullNameRequired
	}
	if !utils.ValidateNigerianPhone(req.PhoneNumber) {
		fields[string(registration.FieldPhoneNumber)] = registration.MsgPhoneInvalid
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	vendor, err := s.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	vendor.FullName = strings.TrimSpace(req.FullName)
	vendor.PhoneNumber = registration.CanonicalizePhone(req.PhoneNumber)
	if addr := strings.TrimSpace(req.BusinessAddress); addr != "" {
		vendor.BusinessAddress = addr
	}

	if err := s.repos.Vendor.Update(ctx, vendor); err != nil {
		return nil, notFound(err, "update vendor")
	}
	return vendor, nil
}

// ChangePassword replaces the password after checking the current one
func (s *vendorService) ChangePassword(ctx context.Context, vendorID string, req *dto.PasswordChangeRequest) error {
	vendor, err := s.GetVendor(ctx, vendorID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, vendor.PasswordHash) {
		return newValidationError("currentPassword", MsgCurrentPassword)
	}
	if !utils.ValidatePassword(req.NewPassword) {
		return newValidationError("newPassword", registration.MsgPasswordTooShort)
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	vendor.PasswordHash = hash

	if err := s.repos.Vendor.Update(ctx, vendor); err != nil {
		return notFound(err, "update vendor")
	}
	return nil
}

func (s *vendorService) authData(vendor *domain.Vendor) (*dto.AuthData, error) {
	token, err := s.jwtManager.GenerateToken(vendor.ID, vendor.EmailAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &dto.AuthData{Token: token, User: *vendor}, nil
}

func (s *vendorService) categoryExists(ctx context.Context, id int) (bool, error) {
	categories, err := s.repos.Category.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// rollbackVendor undoes a half-finished registration so the email can be used again
func (s *vendorService) rollbackVendor(ctx context.Context, vendorID string, cause error) error {
	ctx = context.WithoutCancel(ctx)

	if err := s.repos.Document.DeleteByVendor(ctx, vendorID); err != nil {
		s.logger.Error("failed to remove documents of abandoned vendor", zap.String("vendor_id", vendorID), zap.Error(err))
		return errors.Join(cause, err)
	}
	if err := s.repos.Vendor.Delete(ctx, vendorID); err != nil {
		s.logger.Error("failed to remove abandoned vendor", zap.String("vendor_id", vendorID), zap.Error(err))
		return errors.Join(cause, err)
	}
	return cause
}

func (s *vendorService) saveDocuments(ctx context.Context, vendorID string, data registration.CompleteRegistrationData) error {
	attachments := []struct {
		kind registration.Field
		file *registration.Attachment
	}{
		{registration.FieldIDDocument, data.IDDocument},
		{registration.FieldBusinessRegCertificate, data.BusinessRegCertificate},
	}

	for _, a := range attachments {
		if a.file == nil {
			continue
		}
		doc := &domain.Document{
			VendorID:    vendorID,
			Kind:        string(a.kind),
			Filename:    a.file.Filename,
			ContentType: http.DetectContentType(a.file.Content),
			Size:        int64(len(a.file.Content)),
		}
		if err := s.repos.Document.Create(ctx, doc); err != nil {
			return fmt.Errorf("failed to store %s: %w", a.kind, err)
		}
	}
	return nil
}
