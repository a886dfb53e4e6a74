package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Reader --filename reader.go

// RelatedLimit is maximal number of related products shown with product detail.
const RelatedLimit = 4

// Reader reads single products and categories.
type Reader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
}

// Detail is product with other products from its category.
type Detail struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// Browser loads product pages which aren't part of synchronised search.
type Browser struct {
	reader Reader
	logger *zerolog.Logger
}

// NewBrowser returns new Browser.
func NewBrowser(reader Reader, logger *zerolog.Logger) *Browser {
	return &Browser{
		reader: reader,
		logger: logger,
	}
}

// Product returns product with up to RelatedLimit products from the same category.
// Related products are optional, failure to load them leaves the list empty.
func (b *Browser) Product(ctx context.Context, id string) (*Detail, error) {
	product, err := b.reader.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't load product %s: %w", id, err)
	}

	detail := &Detail{
		Product: *product,
		Related: []models.Product{},
	}

	if product.Category == "" {
		return detail, nil
	}

	related, err := b.reader.ProductsByCategory(ctx, product.Category)
	if err != nil {
		b.logger.Warn().
			Err(err).
			Str("productId", id).
			Msg("can't load related products")
		return detail, nil
	}

	related = lo.Filter(related, func(p models.Product, _ int) bool {
		return p.ID != id
	})
	detail.Related = lo.Subset(related, 0, RelatedLimit)

	return detail, nil
}

// Category returns all products from category. Category names are lower case.
func (b *Browser) Category(ctx context.Context, category string) ([]models.Product, error) {
	products, err := b.reader.ProductsByCategory(ctx, strings.ToLower(category))
	if err != nil {
		return nil, fmt.Errorf("can't load category %s: %w", category, err)
	}

	return products, nil
}
