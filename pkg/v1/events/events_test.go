package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/MichalMitros/crm-console/pkg/v1/events"
	"github.com/MichalMitros/crm-console/pkg/v1/events/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitPublishProductUpdated(t *testing.T) {
	productID := faker.UUIDDigit()
	body := []byte(fmt.Sprintf(`{"productId":"%s","changes":{"price":12.5}}`, productID))

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, events.EventProductUpdated, body).Return(tt.senderError)

			publisher := events.NewPublisher(sender)
			err := publisher.PublishProductUpdated(context.TODO(), productID, map[string]any{"price": 12.5})

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitPublishUserUpdated(t *testing.T) {
	user := map[string]any{"_id": faker.UUIDDigit(), "email": faker.Email()}
	body, err := json.Marshal(user)
	require.NoError(t, err, "can't marshal user")

	sender := mocks.NewSender(t)
	sender.On("Send", mock.Anything, events.EventUserUpdated, body).Return(nil)

	err = events.NewPublisher(sender).PublishUserUpdated(context.TODO(), user)

	require.NoError(t, err, "shouldn't return any error")
}

func TestUnitPublishUnmarshalable(t *testing.T) {
	sender := mocks.NewSender(t)

	err := events.NewPublisher(sender).PublishUserUpdated(context.TODO(), make(chan int))

	require.Error(t, err, "should return marshaling error")
}

func TestUnitPublishRaw(t *testing.T) {
	tests := map[string]struct {
		payload    string
		mockSender bool
		wantErr    error
	}{
		"ok": {
			payload:    `{"productId":"1","changes":{}}`,
			mockSender: true,
		},
		"invalid json": {
			payload: `{"productId":`,
			wantErr: events.ErrInvalidPayload,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			if tt.mockSender {
				sender.On("Send", mock.Anything, events.EventProductUpdated, []byte(tt.payload)).Return(nil)
			}

			err := events.NewPublisher(sender).PublishRaw(context.TODO(), events.EventProductUpdated, json.RawMessage(tt.payload))

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
