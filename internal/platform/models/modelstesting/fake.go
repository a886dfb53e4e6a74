package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeProduct returns models.Product with fake data.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		ID:              faker.UUIDDigit(),
		Name:            faker.Word(),
		Category:        faker.Word(),
		Description:     faker.Sentence(),
		Price:           float64(rand.Intn(1000) + 1),
		QuantityInStock: rand.Intn(100),
		Manufacturer:    faker.Word(),
		Image: models.Image{
			URL: faker.URL(),
			Alt: faker.Word(),
		},
		Sales: models.Sales{
			IsSale:   rand.Intn(2) == 1,
			Discount: float64(rand.Intn(50)),
		},
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeProducts returns n fake products.
func FakeProducts(n int) []models.Product {
	return lo.Times(n, func(_ int) models.Product { return FakeProduct() })
}

// FakeUser returns models.User with fake data.
func FakeUser(ops ...func(u *models.User)) models.User {
	roles := []models.Role{
		models.RoleAdmin,
		models.RoleCustomer,
		models.RoleCustomerSupport,
		models.RoleSeller,
	}

	user := models.User{
		ID:    faker.UUIDDigit(),
		Email: faker.Email(),
		Profile: models.Profile{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Phone:     "050-1234567",
			Position:  faker.Word(),
			Address: models.Address{
				City:    faker.Word(),
				Street:  faker.Word(),
				HouseNo: faker.Word(),
				ZipCode: faker.Word(),
			},
			Role:     roles[rand.Intn(len(roles))],
			IsActive: rand.Intn(2) == 1,
		},
	}

	for _, op := range ops {
		op(&user)
	}

	return user
}

// FakeStats returns models.Stats with fake data.
func FakeStats(ops ...func(s *models.Stats)) models.Stats {
	stats := models.Stats{
		TotalRevenue:   float64(rand.Intn(100000)),
		TotalCustomers: rand.Intn(1000),
		ActiveDeals:    rand.Intn(200),
		ConversionRate: float64(rand.Intn(100)),
		TotalProducts:  lo.ToPtr(rand.Intn(500)),
	}

	for _, op := range ops {
		op(&stats)
	}

	return stats
}
