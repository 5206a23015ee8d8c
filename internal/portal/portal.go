// Package portal exposes the seller API as typed services on top of apiclient.
package portal

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"go.uber.org/zap"
)

// Portal groups the seller services sharing one client and session
type Portal struct {
	Auth       *Auth
	Catalog    *Catalog
	Products   *Products
	Orders     *Orders
	Storefront *Storefront
	Dashboard  *Dashboard
	Settings   *Settings
}

// New wires every service to client and sess
func New(client *apiclient.Client, sess *session.Session, logger *zap.Logger) *Portal {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := NewCatalog(client)
	orders := NewOrders(client)
	return &Portal{
		Auth:       NewAuth(client, sess, logger),
		Catalog:    catalog,
		Products:   NewProducts(client, logger),
		Orders:     orders,
		Storefront: NewStorefront(client),
		Dashboard:  NewDashboard(client, orders, catalog),
		Settings:   NewSettings(client, sess, logger),
	}
}

// Page is one page of a list endpoint
type Page[T any] struct {
	Items      []T
	Pagination apiclient.Pagination
}

func decodePage[T any](env *apiclient.Envelope) (*Page[T], error) {
	items, err := apiclient.DecodeData[[]T](env)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

func pageOptions(page, limit int) []apiclient.RequestOption {
	var opts []apiclient.RequestOption
	if page > 0 {
		opts = append(opts, apiclient.WithQuery("page", strconv.Itoa(page)))
	}
	if limit > 0 {
		opts = append(opts, apiclient.WithQuery("limit", strconv.Itoa(limit)))
	}
	return opts
}

func resourcePath(collection, id string, rest ...string) string {
	p := fmt.Sprintf("/%s/%s", collection, url.PathEscape(id))
	for _, r := range rest {
		p += "/" + r
	}
	return p
}
