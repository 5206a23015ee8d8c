package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/repository"
)

// ProductImageBaseURL prefixes the path recorded for uploaded product images
const ProductImageBaseURL = "/uploads/products"

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) List(ctx context.Context, vendorID string, page PageRequest) (*Paged[*domain.Product], error) {
	page = page.normalize()
	items, total, err := s.products.List(ctx, vendorID, page.offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return newPaged(items, page, total), nil
}

func (s *productService) Get(ctx context.Context, vendorID, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, vendorID, id)
	if err != nil {
		return nil, notFound(err, "get product")
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, vendorID string, req *dto.ProductRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, newValidationError("name", "Product name is required")
	}

	product := &domain.Product{
		VendorID:    vendorID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Images:      []string{},
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, vendorID, id string, req *dto.ProductRequest) (*domain.Product, error) {
	product, err := s.Get(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, newValidationError("name", "Product name is required")
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID

	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFound(err, "update product")
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, vendorID, id string) error {
	if err := s.products.Delete(ctx, vendorID, id); err != nil {
		return notFound(err, "delete product")
	}
	return nil
}

// AddImages appends the uploaded images to the product in upload order
func (s *productService) AddImages(ctx context.Context, vendorID, id string, images []Upload) (*domain.Product, error) {
	if len(images) == 0 {
		return nil, newValidationError("productImage", MsgImagesRequired)
	}

	product, err := s.Get(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		product.Images = append(product.Images, path.Join(ProductImageBaseURL, product.ID, path.Base(img.Filename)))
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFound(err, "update product")
	}
	return product, nil
}
