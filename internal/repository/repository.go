package repository

import (
	"embed"

	"github.com/prperemyshlev/seller-portal/pkg/database"
)

// Migrations holds the Postgres schema
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files
const MigrationsDir = "migrations"

// Repositories holds all repository interfaces
type Repositories struct {
	Vendor     VendorRepository
	Document   DocumentRepository
	Product    ProductRepository
	Order      OrderRepository
	Storefront StorefrontRepository
	Category   CategoryRepository
}

// NewRepositories creates all repositories. Vendor accounts and documents go to Postgres when db
// is non-nil; everything else lives in memory.
func NewRepositories(db *database.Postgres) *Repositories {
	repos := &Repositories{
		Vendor:     NewMemoryVendorRepository(),
		Document:   NewMemoryDocumentRepository(),
		Product:    NewMemoryProductRepository(),
		Order:      NewMemoryOrderRepository(),
		Storefront: NewMemoryStorefrontRepository(),
		Category:   NewStaticCategoryRepository(DefaultCategories),
	}
	if db != nil {
		repos.Vendor = NewVendorRepository(db)
		repos.Document = NewDocumentRepository(db)
	}
	return repos
}
