package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
)

// StatsTimeout limits dashboard stats request.
const StatsTimeout = 10 * time.Second

// CurrentUser returns user owning the dashboard.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		endpoint: "dashboard.current",
		method:   http.MethodGet,
		path:     "/dashboard/current",
		auth:     true,
	}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// NewCustomers returns raw new customers chart payload for last months.
func (c *Client) NewCustomers(ctx context.Context, months int) (json.RawMessage, error) {
	return c.rawDashboard(ctx, "dashboard.new_customers", "/dashboard/new-customers", months)
}

// Revenue returns raw revenue chart payload for last months.
func (c *Client) Revenue(ctx context.Context, months int) (json.RawMessage, error) {
	return c.rawDashboard(ctx, "dashboard.revenue", "/dashboard/revenue", months)
}

// Stats returns raw dashboard statistics payload.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	var body []byte
	err := c.do(ctx, request{
		endpoint: "dashboard.stats",
		method:   http.MethodGet,
		path:     "/dashboard/stats",
		auth:     true,
		timeout:  StatsTimeout,
	}, &body)
	if err != nil {
		return nil, err
	}

	return rawJSON("dashboard.stats", body)
}

func (c *Client) rawDashboard(ctx context.Context, endpoint, path string, months int) (json.RawMessage, error) {
	var body []byte
	err := c.do(ctx, request{
		endpoint: endpoint,
		method:   http.MethodGet,
		path:     path,
		query:    url.Values{"months": {strconv.Itoa(months)}},
		auth:     true,
	}, &body)
	if err != nil {
		return nil, err
	}

	return rawJSON(endpoint, body)
}

func rawJSON(endpoint string, body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &Error{Kind: ErrDecode, Endpoint: endpoint, Message: "response is not valid json"}
	}
	return json.RawMessage(body), nil
}
