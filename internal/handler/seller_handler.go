package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/service"
	"go.uber.org/zap"
)

// ProductImageField is the repeated multipart part carrying product images
const ProductImageField = "productImage"

// SellerHandler serves the catalog, products, orders, storefront and dashboard endpoints
type SellerHandler struct {
	catalog    service.CatalogService
	products   service.ProductService
	orders     service.OrderService
	storefront service.StorefrontService
	dashboard  service.DashboardService
	logger     *zap.Logger
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(
	catalog service.CatalogService,
	products service.ProductService,
	orders service.OrderService,
	storefront service.StorefrontService,
	dashboard service.DashboardService,
	logger *zap.Logger,
) *SellerHandler {
	return &SellerHandler{
		catalog:    catalog,
		products:   products,
		orders:     orders,
		storefront: storefront,
		dashboard:  dashboard,
		logger:     logger,
	}
}

func (h *SellerHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Categories retrieved", categories)
}

func (h *SellerHandler) ListProducts(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	page, err := h.products.List(c.Request.Context(), vendorID(c), service.PageRequest{Page: q.Page, Limit: q.Limit})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondPage(c, "Products retrieved", page.Items, page.Pagination)
}

func (h *SellerHandler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), vendorID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product retrieved", product)
}

func (h *SellerHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), vendorID(c), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Product created", product)
}

func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), vendorID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product updated", product)
}

func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), vendorID(c), c.Param("id")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product deleted", nil)
}

// UploadProductImages accepts one or more productImage parts
func (h *SellerHandler) UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid multipart payload", nil)
		return
	}

	files := form.File[ProductImageField]
	uploads := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
	}

	product, err := h.products.AddImages(c.Request.Context(), vendorID(c), c.Param("id"), uploads)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Images uploaded", product)
}

func (h *SellerHandler) ListOrders(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	page, err := h.orders.List(c.Request.Context(), vendorID(c), domain.OrderStatus(q.Status),
		service.PageRequest{Page: q.Page, Limit: q.Limit})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondPage(c, "Orders retrieved", page.Items, page.Pagination)
}

func (h *SellerHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), vendorID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved", order)
}

func (h *SellerHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), vendorID(c), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Order updated", order)
}

func (h *SellerHandler) GetStorefront(c *gin.Context) {
	storefront, err := h.storefront.Get(c.Request.Context(), vendorID(c))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Storefront retrieved", storefront)
}

func (h *SellerHandler) UpdateStorefront(c *gin.Context) {
	var req dto.StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	storefront, err := h.storefront.Update(c.Request.Context(), vendorID(c), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Storefront updated", storefront)
}

func (h *SellerHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context(), vendorID(c))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved", summary)
}

func (h *SellerHandler) Analytics(c *gin.Context) {
	var q dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	analytics, err := h.dashboard.Analytics(c.Request.Context(), vendorID(c), q.Period)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Analytics retrieved", analytics)
}
