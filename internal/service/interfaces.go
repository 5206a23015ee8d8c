package service

import (
	"context"
	"time"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/registration"
)

// VendorService defines vendor account operations
type VendorService interface {
	Register(ctx context.Context, data registration.CompleteRegistrationData) (*dto.AuthData, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthData, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
	GetVendor(ctx context.Context, vendorID string) (*domain.Vendor, error)
	Documents(ctx context.Context, vendorID string) ([]*domain.Document, error)
	UpdateProfile(ctx context.Context, vendorID string, req *dto.ProfileRequest) (*domain.Vendor, error)
	ChangePassword(ctx context.Context, vendorID string, req *dto.PasswordChangeRequest) error
}

// CatalogService lists marketplace categories
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// ProductService defines product management for the signed-in vendor
type ProductService interface {
	List(ctx context.Context, vendorID string, page PageRequest) (*Paged[*domain.Product], error)
	Get(ctx context.Context, vendorID, id string) (*domain.Product, error)
	Create(ctx context.Context, vendorID string, req *dto.ProductRequest) (*domain.Product, error)
	Update(ctx context.Context, vendorID, id string, req *dto.ProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, vendorID, id string) error
	AddImages(ctx context.Context, vendorID, id string, images []Upload) (*domain.Product, error)
}

// OrderService defines order management for the signed-in vendor
type OrderService interface {
	List(ctx context.Context, vendorID string, status domain.OrderStatus, page PageRequest) (*Paged[*domain.Order], error)
	Get(ctx context.Context, vendorID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, vendorID, id string, status domain.OrderStatus) (*domain.Order, error)
	SeedDemoOrders(ctx context.Context, vendorID string) error
}

// StorefrontService reads and updates store settings
type StorefrontService interface {
	Get(ctx context.Context, vendorID string) (*domain.Storefront, error)
	Update(ctx context.Context, vendorID string, req *dto.StorefrontRequest) (*domain.Storefront, error)
}

// DashboardService aggregates headline numbers and sales analytics
type DashboardService interface {
	Summary(ctx context.Context, vendorID string) (*domain.DashboardSummary, error)
	Analytics(ctx context.Context, vendorID, period string) (*domain.Analytics, error)
}

// TokenBlacklist remembers revoked tokens until they would have expired anyway
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RateLimiter counts requests per key over a window
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error)
}

// RateLimitResult is the outcome of one Allow call.
// RetryAfter is set only when the request was refused.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Upload describes one received file. Only metadata is kept.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
}
