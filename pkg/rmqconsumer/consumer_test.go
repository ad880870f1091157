package rmqconsumer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contacts-api/config"
	"contacts-api/internal/infrastructure/mq"
	"contacts-api/internal/interface/api/rest/dto/contact"
)

func eventBody(t *testing.T, method string, contactID int64) []byte {
	t.Helper()
	b, err := json.Marshal(mq.Event{
		Id:      uuid.New(),
		TS:      time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		Method:  method,
		UserID:  1,
		Payload: contact.Contact{ID: contactID, FirstName: "Jo", LastName: "Lee", BornDate: "1995-03-10"},
	})
	require.NoError(t, err)
	return b
}

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		contactID  int64
		wantAction string
	}
	cases := []tc{
		{"POST -> ContactCreated", "POST", 1, "ContactCreated"},
		{"PUT  -> ContactUpdated", "PUT", 2, "ContactUpdated"},
		{"DELETE -> ContactDeleted", "DELETE", 3, "ContactDeleted"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			c := &Consumer{log: zap.New(core)}

			msg := amqp091.Delivery{RoutingKey: tt.routingKey, Body: eventBody(t, tt.routingKey, tt.contactID)}
			require.NoError(t, c.delivery(msg))

			entries := logs.FilterMessage("contact event").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.wantAction, fields["action"])
			assert.Equal(t, tt.contactID, fields["contact_id"])
			assert.Equal(t, int64(1), fields["user_id"])
		})
	}
}

func Test_delivery_Rejects(t *testing.T) {
	c := &Consumer{log: zap.NewNop()}

	err := c.delivery(amqp091.Delivery{RoutingKey: "PATCH", Body: []byte(`{}`)})
	assert.ErrorContains(t, err, "unknown routing key")

	err = c.delivery(amqp091.Delivery{RoutingKey: "POST", Body: []byte(`{bad`)})
	assert.ErrorContains(t, err, "decode ContactCreated event")
}

func TestConnect_InvalidDSN(t *testing.T) {
	l := zap.NewNop()
	c := New(config.MQ{}, l, nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
