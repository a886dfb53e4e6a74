package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/platform/models/modelstesting"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
)

// MockedAPI is CRM API stub answering with JSON bodies registered per path.
type MockedAPI struct {
	*httptest.Server

	mu        sync.RWMutex
	responses map[string]any
	requests  map[string]int
}

// PrepareMockedAPI is helper function for mocking CRM API server.
// Paths without response are answered with 404.
func PrepareMockedAPI(t *testing.T, responses map[string]any) *MockedAPI {
	t.Helper()

	api := &MockedAPI{
		responses: responses,
		requests:  map[string]int{},
	}

	api.Server = httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		api.mu.Lock()
		api.requests[req.URL.Path]++
		resp, ok := api.responses[req.URL.Path]
		api.mu.Unlock()

		wrt.Header().Add(contentType, "application/json")
		if !ok {
			wrt.WriteHeader(http.StatusNotFound)
			_, _ = wrt.Write([]byte(`{"message":"Not found"}`))
			return
		}

		if err := json.NewEncoder(wrt).Encode(resp); err != nil {
			wrt.WriteHeader(http.StatusInternalServerError)
		}
	}))

	t.Cleanup(func() {
		api.Close()
	})

	return api
}

// SetResponse replaces response for path.
func (a *MockedAPI) SetResponse(path string, resp any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[path] = resp
}

// Requests returns number of requests sent to path.
func (a *MockedAPI) Requests(path string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.requests[path]
}

// WaitFor is blocking helper function, returns when cond is met. Fails the test after timeout.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.After(timeout)
	for {
		if cond() {
			return
		}

		select {
		case <-deadline:
			require.FailNow(t, "condition not met before timeout", msg)
		case <-time.After(time.Millisecond * 50):
		}
	}
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// GenerateProducts generates n products with ID in [1;n].
func GenerateProducts(t *testing.T, n int) []models.Product {
	t.Helper()

	results := make([]models.Product, n)

	for ix := 0; ix < n; ix++ {
		results[ix] = modelstesting.FakeProduct(func(p *models.Product) { p.ID = strconv.Itoa(ix + 1) })
	}

	return results
}

// GenerateUsers generates n users with ID in [1;n].
func GenerateUsers(t *testing.T, n int) []models.User {
	t.Helper()

	results := make([]models.User, n)

	for ix := 0; ix < n; ix++ {
		results[ix] = modelstesting.FakeUser(func(u *models.User) { u.ID = strconv.Itoa(ix + 1) })
	}

	return results
}
