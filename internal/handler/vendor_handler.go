package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/service"
	"go.uber.org/zap"
)

// VendorHandler handles account requests
type VendorHandler struct {
	vendorService service.VendorService
	maxUpload     int64
	logger        *zap.Logger
}

// NewVendorHandler creates a new vendor handler. maxUpload caps the registration body in bytes.
func NewVendorHandler(vendorService service.VendorService, maxUpload int64, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		maxUpload:     maxUpload,
		logger:        logger,
	}
}

// Register handles vendor registration
// @Summary Register a new vendor
// @Tags vendor
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.Envelope{data=dto.AuthData}
// @Failure 400 {object} dto.ErrorEnvelope
// @Router /vendor/register [post]
func (h *VendorHandler) Register(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "Upload is too large", nil)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid multipart payload", nil)
		return
	}

	value := func(f registration.Field) string {
		if v := form.Value[string(f)]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	data := registration.CompleteRegistrationData{
		EmailAddress:      value(registration.FieldEmailAddress),
		Password:          value(registration.FieldPassword),
		FullName:          value(registration.FieldFullName),
		BusinessName:      value(registration.FieldBusinessName),
		BusinessCategory:  registration.ParseCategoryID(value(registration.FieldBusinessCategory)),
		PhoneNumber:       value(registration.FieldPhoneNumber),
		BusinessRegNumber: value(registration.FieldBusinessRegNumber),
		StoreName:         value(registration.FieldStoreName),
		BusinessAddress:   value(registration.FieldBusinessAddress),
		TaxIDNumber:       value(registration.FieldTaxIDNumber),
	}

	if data.IDDocument, err = readAttachment(form, registration.FieldIDDocument); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid multipart payload", nil)
		return
	}
	if data.BusinessRegCertificate, err = readAttachment(form, registration.FieldBusinessRegCertificate); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid multipart payload", nil)
		return
	}

	auth, err := h.vendorService.Register(c.Request.Context(), data)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Registration successful", auth)
}

// Login handles vendor login
// @Summary Login vendor
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.Envelope{data=dto.AuthData}
// @Failure 401 {object} dto.ErrorEnvelope
// @Router /auth/login [post]
func (h *VendorHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	auth, err := h.vendorService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", auth)
}

// Logout revokes the bearer token
// @Router /auth/logout [post]
func (h *VendorHandler) Logout(c *gin.Context) {
	if err := h.vendorService.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the signed-in vendor
// @Router /auth/me [get]
func (h *VendorHandler) Me(c *gin.Context) {
	vendor, err := h.vendorService.GetVendor(c.Request.Context(), vendorID(c))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Profile retrieved", vendor)
}

// Documents lists the verification documents of the signed-in vendor
// @Router /vendor/documents [get]
func (h *VendorHandler) Documents(c *gin.Context) {
	docs, err := h.vendorService.Documents(c.Request.Context(), vendorID(c))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Documents retrieved", docs)
}

// UpdateProfile updates contact details
// @Router /settings/profile [put]
func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	vendor, err := h.vendorService.UpdateProfile(c.Request.Context(), vendorID(c), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Profile updated", vendor)
}

// ChangePassword replaces the password
// @Router /settings/password [put]
func (h *VendorHandler) ChangePassword(c *gin.Context) {
	var req dto.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.vendorService.ChangePassword(c.Request.Context(), vendorID(c), &req); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Password changed", nil)
}

// readAttachment returns the first file sent under field, or nil when there is none
func readAttachment(form *multipart.Form, field registration.Field) (*registration.Attachment, error) {
	files := form.File[string(field)]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}

	return &registration.Attachment{Filename: files[0].Filename, Content: content}, nil
}
