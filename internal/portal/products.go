package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"go.uber.org/zap"
)

// ProductImageField is the multipart part name repeated once per uploaded image
const ProductImageField = "productImage"

// ImageFile is a product image to upload
type ImageFile struct {
	Filename string
	Content  []byte
}

// Products manages the vendor's product listings
type Products struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewProducts(client *apiclient.Client, logger *zap.Logger) *Products {
	return &Products{client: client, logger: logger}
}

// List returns one page of products; zero page or limit leaves the server default
func (p *Products) List(ctx context.Context, page, limit int) (*Page[domain.Product], error) {
	env, err := p.client.Get(ctx, "/products", pageOptions(page, limit)...)
	if err != nil {
		return nil, err
	}
	return decodePage[domain.Product](env)
}

func (p *Products) Get(ctx context.Context, id string) (*domain.Product, error) {
	env, err := p.client.Get(ctx, resourcePath("products", id))
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

func (p *Products) Create(ctx context.Context, req dto.ProductRequest) (*domain.Product, error) {
	env, err := p.client.Post(ctx, "/products", req)
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

func (p *Products) Update(ctx context.Context, id string, req dto.ProductRequest) (*domain.Product, error) {
	env, err := p.client.Put(ctx, resourcePath("products", id), req)
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

func (p *Products) Delete(ctx context.Context, id string) error {
	_, err := p.client.Delete(ctx, resourcePath("products", id))
	return err
}

// UploadImages attaches images to an existing product in one multipart request
func (p *Products) UploadImages(ctx context.Context, id string, images []ImageFile) (*domain.Product, error) {
	form := apiclient.NewFormData()
	for _, img := range images {
		form.AddFile(ProductImageField, img.Filename, img.Content)
	}

	env, err := p.client.Post(ctx, resourcePath("products", id, "images"), form, apiclient.AsFormData())
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

// CreateWithImages creates the product first and uploads images only once its id is known.
// If the upload fails the created product is returned together with the error.
func (p *Products) CreateWithImages(ctx context.Context, req dto.ProductRequest, images []ImageFile) (*domain.Product, error) {
	product, err := p.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return product, nil
	}

	updated, err := p.UploadImages(ctx, product.ID, images)
	if err != nil {
		p.logger.Warn("Product created but image upload failed",
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		return product, err
	}
	return updated, nil
}

func decodeProduct(env *apiclient.Envelope) (*domain.Product, error) {
	product, err := apiclient.DecodeData[domain.Product](env)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
