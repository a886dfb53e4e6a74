package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Role is user role.
type Role string

// Known user roles.
const (
	RoleAdmin           Role = "admin"
	RoleCustomer        Role = "customer"
	RoleCustomerSupport Role = "customer_support"
	RoleSeller          Role = "seller"
)

// Valid reports whether r is one of known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleCustomerSupport, RoleSeller:
		return true
	default:
		return false
	}
}

// Product is catalog product model.
type Product struct {
	ID              string   `json:"_id"`
	Name            string   `json:"product_name"`
	Category        string   `json:"category"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	QuantityInStock int      `json:"quantity_in_stock"`
	Manufacturer    string   `json:"manufacturer"`
	Image           Image    `json:"image"`
	Sales           Sales    `json:"sales"`
	Reviews         []Review `json:"reviews,omitempty"`
}

// Image is product's image.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Sales is product's sale information.
type Sales struct {
	IsSale   bool    `json:"isSale"`
	Discount float64 `json:"discount"`
}

// Review is product review. Product and User are either plain ids or populated objects.
type Review struct {
	ID        string          `json:"_id,omitempty"`
	Product   json.RawMessage `json:"product,omitempty"`
	User      json.RawMessage `json:"user,omitempty"`
	Rating    float64         `json:"rating"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// Clone returns deep copy of the product.
func (p Product) Clone() Product {
	if p.Reviews != nil {
		p.Reviews = lo.Map(p.Reviews, func(r Review, _ int) Review {
			return r.Clone()
		})
	}
	return p
}

// Clone returns deep copy of the review.
func (r Review) Clone() Review {
	r.Product = bytes.Clone(r.Product)
	r.User = bytes.Clone(r.User)
	r.CreatedAt = clonePtr(r.CreatedAt)
	r.UpdatedAt = clonePtr(r.UpdatedAt)
	return r
}

// Patch returns copy of the product with changes shallow-merged into it.
// Every top-level key of changes replaces the whole field, unknown keys are ignored.
func (p Product) Patch(changes map[string]json.RawMessage) (Product, error) {
	if len(changes) == 0 {
		return p, nil
	}

	current, err := json.Marshal(p)
	if err != nil {
		return p, fmt.Errorf("can't marshal product: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return p, fmt.Errorf("can't unmarshal product fields: %w", err)
	}

	for key, value := range changes {
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return p, fmt.Errorf("can't marshal patched product: %w", err)
	}

	var patched Product
	if err := json.Unmarshal(merged, &patched); err != nil {
		return p, fmt.Errorf("can't apply product changes: %w", err)
	}

	return patched, nil
}

// User is CRM user account model.
type User struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	Profile   Profile    `json:"profile"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Clone returns deep copy of the user.
func (u User) Clone() User {
	u.Profile.Avatar = clonePtr(u.Profile.Avatar)
	u.LastLogin = clonePtr(u.LastLogin)
	return u
}

// Profile is user's profile.
type Profile struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *Image  `json:"avatar,omitempty"`
	Phone     string  `json:"phone"`
	Position  string  `json:"position,omitempty"`
	Address   Address `json:"address"`
	Role      Role    `json:"role"`
	IsActive  bool    `json:"isActive"`
}

// Address is user's address.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street,omitempty"`
	HouseNo string `json:"houseNo,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Session is decoded identity of logged in user.
type Session struct {
	User      User
	Token     string
	ExpiresAt *time.Time
}

// ProductUpdated is payload of productUpdated push event.
type ProductUpdated struct {
	ProductID string                     `json:"productId"`
	Changes   map[string]json.RawMessage `json:"changes"`
}

// Stats are CRM dashboard statistics.
type Stats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalCustomers int     `json:"totalCustomers"`
	ActiveDeals    int     `json:"activeDeals"`
	ConversionRate float64 `json:"conversionRate"`
	TotalProducts  *int    `json:"totalProducts,omitempty"`
}

// StatsSnapshot is stats recorded at a point in time.
type StatsSnapshot struct {
	ID      int
	TakenAt time.Time
	Stats   Stats
}

// ChartData is chart series ready for rendering.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is single chart series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	BorderRadius    int       `json:"borderRadius,omitempty"`
}

// Credentials are login form values.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is new account form values.
type Registration struct {
	Email    string              `json:"email" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=8"`
	Profile  RegistrationProfile `json:"profile"`
}

// RegistrationProfile is profile part of Registration.
type RegistrationProfile struct {
	FirstName string              `json:"firstName" validate:"required"`
	LastName  string              `json:"lastName" validate:"required"`
	Avatar    *Image              `json:"avatar,omitempty"`
	Phone     string              `json:"phone" validate:"required,phone"`
	Position  string              `json:"position,omitempty"`
	Address   RegistrationAddress `json:"address"`
	Role      Role                `json:"role" validate:"required,role"`
}

// RegistrationAddress is address part of Registration.
type RegistrationAddress struct {
	City    string `json:"city" validate:"required"`
	Street  string `json:"street" validate:"required"`
	HouseNo string `json:"houseNo,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
