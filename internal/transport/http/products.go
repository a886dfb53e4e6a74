package http

import (
	"fmt"
	"net/http"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/catalog"
	"github.com/gin-gonic/gin"
)

// productsResponse is products view with shareable filter query.
type productsResponse struct {
	catalog.State
	Query string `json:"query"`
}

type pageRequest struct {
	Page int `json:"page" binding:"required"`
}

func newProductsResponse(state catalog.State) productsResponse {
	return productsResponse{
		State: state,
		Query: state.Filter.URLQuery().Encode(),
	}
}

func (s *Server) getProducts(c *gin.Context) {
	respond(c, http.StatusOK, newProductsResponse(s.products.State()))
}

// putFilter replaces filter. Fields missing in body keep their current values.
func (s *Server) putFilter(c *gin.Context) {
	next := s.products.State().Filter
	if err := c.ShouldBindJSON(&next); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid filter", nil)
		return
	}

	if err := next.Validate(); err != nil {
		respondError(c, err, "", nil)
		return
	}

	s.products.SetFilter(next)
	respond(c, http.StatusAccepted, newProductsResponse(s.products.State()))
}

func (s *Server) resetFilter(c *gin.Context) {
	s.products.ResetFilters()
	respond(c, http.StatusAccepted, newProductsResponse(s.products.State()))
}

func (s *Server) putPage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid page", nil)
		return
	}

	s.products.SetPage(req.Page)
	respond(c, http.StatusAccepted, newProductsResponse(s.products.State()))
}

func (s *Server) refetchProducts(c *gin.Context) {
	if err := s.products.Refetch(c.Request.Context()); err != nil {
		state := s.products.State()
		respondError(c, err, state.Error, newProductsResponse(state))
		return
	}

	respond(c, http.StatusOK, newProductsResponse(s.products.State()))
}

// getProduct returns product detail with related products from its category.
func (s *Server) getProduct(c *gin.Context) {
	detail, err := s.browser.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, api.Message(err, "Failed to load product"), nil)
		return
	}

	respond(c, http.StatusOK, detail)
}

func (s *Server) getCategory(c *gin.Context) {
	products, err := s.browser.Category(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err, api.Message(err, "Failed to load products"), nil)
		return
	}

	respond(c, http.StatusOK, products)
}
