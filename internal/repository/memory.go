package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/seller-portal/internal/domain"
)

// DefaultCategories seeds the category listing
var DefaultCategories = []domain.Category{
	{ID: 1, Name: "General"},
	{ID: 2, Name: "Electronics"},
	{ID: 3, Name: "Food & Drinks"},
	{ID: 4, Name: "Fashion"},
	{ID: 5, Name: "Health & Beauty"},
	{ID: 6, Name: "Home & Kitchen"},
}

type memoryVendorRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Vendor
	byEmail map[string]string
}

// NewMemoryVendorRepository creates an in-process vendor repository
func NewMemoryVendorRepository() VendorRepository {
	return &memoryVendorRepository{
		byID:    make(map[string]domain.Vendor),
		byEmail: make(map[string]string),
	}
}

func (r *memoryVendorRepository) Create(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(vendor.EmailAddress)
	if _, exists := r.byEmail[email]; exists {
		return fmt.Errorf("vendor with email %s already exists: %w", vendor.EmailAddress, ErrDuplicateEmail)
	}

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	now := time.Now()
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	vendor.UpdatedAt = now

	r.byID[vendor.ID] = *vendor
	r.byEmail[email] = vendor.ID
	return nil
}

func (r *memoryVendorRepository) GetByEmail(_ context.Context, email string) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("vendor with email %s not found: %w", email, ErrNotFound)
	}
	v := r.byID[id]
	return &v, nil
}

func (r *memoryVendorRepository) GetByID(_ context.Context, id string) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("vendor with id %s not found: %w", id, ErrNotFound)
	}
	return &v, nil
}

func (r *memoryVendorRepository) Update(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[vendor.ID]
	if !ok {
		return fmt.Errorf("vendor with id %s not found: %w", vendor.ID, ErrNotFound)
	}

	oldEmail, newEmail := strings.ToLower(current.EmailAddress), strings.ToLower(vendor.EmailAddress)
	if oldEmail != newEmail {
		if _, taken := r.byEmail[newEmail]; taken {
			return fmt.Errorf("vendor with email %s already exists: %w", vendor.EmailAddress, ErrDuplicateEmail)
		}
		delete(r.byEmail, oldEmail)
		r.byEmail[newEmail] = vendor.ID
	}

	vendor.UpdatedAt = time.Now()
	r.byID[vendor.ID] = *vendor
	return nil
}

func (r *memoryVendorRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("vendor with id %s not found: %w", id, ErrNotFound)
	}
	delete(r.byEmail, strings.ToLower(v.EmailAddress))
	delete(r.byID, id)
	return nil
}

type memoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string][]domain.Document
}

// NewMemoryDocumentRepository creates an in-process document repository
func NewMemoryDocumentRepository() DocumentRepository {
	return &memoryDocumentRepository{docs: make(map[string][]domain.Document)}
}

func (r *memoryDocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.VendorID] = append(r.docs[doc.VendorID], *doc)
	return nil
}

func (r *memoryDocumentRepository) ListByVendor(_ context.Context, vendorID string) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.docs[vendorID]
	docs := make([]*domain.Document, len(stored))
	for i := range stored {
		d := stored[i]
		docs[i] = &d
	}
	return docs, nil
}

func (r *memoryDocumentRepository) DeleteByVendor(_ context.Context, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, vendorID)
	return nil
}

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewMemoryProductRepository creates an in-process product repository
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{products: make(map[string]domain.Product)}
}

func (r *memoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *memoryProductRepository) GetByID(_ context.Context, vendorID, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return nil, fmt.Errorf("product %s not found: %w", id, ErrNotFound)
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *memoryProductRepository) List(_ context.Context, vendorID string, offset, limit int) ([]*domain.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Product
	for _, p := range r.products {
		if p.VendorID == vendorID {
			matched = append(matched, cloneProduct(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := paginate(matched, offset, limit)
	out := make([]*domain.Product, len(page))
	for i := range page {
		out[i] = &page[i]
	}
	return out, len(matched), nil
}

func (r *memoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[product.ID]
	if !ok || current.VendorID != product.VendorID {
		return fmt.Errorf("product %s not found: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *memoryProductRepository) Delete(_ context.Context, vendorID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return fmt.Errorf("product %s not found: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewMemoryOrderRepository creates an in-process order repository
func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[string]domain.Order)}
}

func (r *memoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *memoryOrderRepository) GetByID(_ context.Context, vendorID, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok || o.VendorID != vendorID {
		return nil, fmt.Errorf("order %s not found: %w", id, ErrNotFound)
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *memoryOrderRepository) List(_ context.Context, vendorID string, status domain.OrderStatus, offset, limit int) ([]*domain.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Order
	for _, o := range r.orders {
		if o.VendorID == vendorID && (status == "" || o.Status == status) {
			matched = append(matched, cloneOrder(o))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := paginate(matched, offset, limit)
	out := make([]*domain.Order, len(page))
	for i := range page {
		out[i] = &page[i]
	}
	return out, len(matched), nil
}

func (r *memoryOrderRepository) UpdateStatus(_ context.Context, vendorID, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.VendorID != vendorID {
		return nil, fmt.Errorf("order %s not found: %w", id, ErrNotFound)
	}
	o.Status = status
	r.orders[id] = o

	o = cloneOrder(o)
	return &o, nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

type memoryStorefrontRepository struct {
	mu          sync.RWMutex
	storefronts map[string]domain.Storefront
}

// NewMemoryStorefrontRepository creates an in-process storefront repository
func NewMemoryStorefrontRepository() StorefrontRepository {
	return &memoryStorefrontRepository{storefronts: make(map[string]domain.Storefront)}
}

func (r *memoryStorefrontRepository) Get(_ context.Context, vendorID string) (*domain.Storefront, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sf, ok := r.storefronts[vendorID]
	if !ok {
		return nil, fmt.Errorf("storefront for vendor %s not found: %w", vendorID, ErrNotFound)
	}
	return &sf, nil
}

func (r *memoryStorefrontRepository) Save(_ context.Context, storefront *domain.Storefront) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storefronts[storefront.VendorID] = *storefront
	return nil
}

type staticCategoryRepository struct {
	categories []domain.Category
}

// NewStaticCategoryRepository serves a fixed category list
func NewStaticCategoryRepository(categories []domain.Category) CategoryRepository {
	return &staticCategoryRepository{categories: categories}
}

func (r *staticCategoryRepository) List(context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.categories...), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
