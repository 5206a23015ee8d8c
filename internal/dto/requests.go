package dto

import "github.com/prperemyshlev/seller-portal/internal/domain"

// LoginRequest represents a login request
type LoginRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// AuthData is the data block of a successful login or registration
type AuthData struct {
	Token string        `json:"token"`
	User  domain.Vendor `json:"user"`
}

// ProductRequest represents a create or update product request
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  int     `json:"categoryId"`
}

// OrderStatusRequest updates the status of an order
type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// StorefrontRequest updates the storefront settings
type StorefrontRequest struct {
	StoreName   string `json:"storeName" binding:"required"`
	Description string `json:"description"`
	BannerURL   string `json:"bannerUrl"`
	LogoURL     string `json:"logoUrl"`
	Published   bool   `json:"published"`
}

// ProfileRequest updates the vendor profile
type ProfileRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	BusinessAddress string `json:"businessAddress"`
}

// PasswordChangeRequest changes the vendor password
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ListQuery selects a page of a list endpoint. Status applies to orders only.
type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Status string `form:"status"`
}

// AnalyticsQuery selects the analytics period
type AnalyticsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=7d 30d 90d"`
}
