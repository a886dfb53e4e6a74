package catalog_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/catalog"
	"github.com/MichalMitros/crm-console/internal/catalog/mocks"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/platform/models/modelstesting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitBrowserProduct(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = "p1"
		p.Category = "cakes"
	})
	uncategorised := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = "p1"
		p.Category = ""
	})
	others := modelstesting.FakeProducts(5)
	sameCategory := append([]models.Product{others[0], product}, others[1:]...)

	tests := map[string]struct {
		product     *models.Product
		productErr  error
		mockRelated bool
		related     []models.Product
		relatedErr  error
		want        *catalog.Detail
		wantErr     error
	}{
		"ok": {
			product:     &product,
			mockRelated: true,
			related:     sameCategory,
			want: &catalog.Detail{
				Product: product,
				Related: others[:catalog.RelatedLimit],
			},
		},
		"related fail": {
			product:     &product,
			mockRelated: true,
			relatedErr:  &api.Error{Kind: api.ErrServer, Status: 500},
			want: &catalog.Detail{
				Product: product,
				Related: []models.Product{},
			},
		},
		"no category": {
			product: &uncategorised,
			want: &catalog.Detail{
				Product: uncategorised,
				Related: []models.Product{},
			},
		},
		"product fail": {
			productErr: &api.Error{Kind: api.ErrServer, Status: 404},
			wantErr:    api.ErrServer,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logger := zerolog.Nop()
			reader := mocks.NewReader(t)
			reader.On("GetProduct", mock.Anything, "p1").Return(tt.product, tt.productErr)
			if tt.mockRelated {
				reader.On("ProductsByCategory", mock.Anything, "cakes").Return(tt.related, tt.relatedErr)
			}

			got, err := catalog.NewBrowser(reader, &logger).Product(context.TODO(), "p1")

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			if tt.want == nil {
				assert.Nil(t, got, "shouldn't return product")
				return
			}
			require.NotNil(t, got, "should return product")
			assert.Equal(t, tt.want, got, "should return product with related products")
		})
	}
}

func TestUnitBrowserCategory(t *testing.T) {
	products := modelstesting.FakeProducts(3)

	logger := zerolog.Nop()
	reader := mocks.NewReader(t)
	reader.On("ProductsByCategory", mock.Anything, "cakes").Return(products, nil).Once()
	reader.On("ProductsByCategory", mock.Anything, "bread").Return(nil, assert.AnError).Once()

	browser := catalog.NewBrowser(reader, &logger)

	got, err := browser.Category(context.TODO(), "Cakes")
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, products, got, "should return category products")

	_, err = browser.Category(context.TODO(), "bread")
	require.ErrorIs(t, err, assert.AnError, "should return reader error")
}
