package domain_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

func testShipment(t *testing.T) *domain.Shipment {
	t.Helper()

	quote, err := domain.NewQuote(testQuoteRequest(), domain.DefaultRateTable(), domain.DefaultServiceCatalog())
	require.NoError(t, err)

	return domain.NewShipment(quote, time.Now().UTC().AddDate(0, 0, 3))
}

func TestNewShipment(t *testing.T) {
	shipment := testShipment(t)

	assert.NotEmpty(t, shipment.ShipmentID)
	assert.Regexp(t, regexp.MustCompile(`^SS\d{9}$`), shipment.TrackingNumber)
	assert.Equal(t, domain.ShipmentStatusPending, shipment.Status)
	assert.Empty(t, shipment.TrackingHistory)
	assert.Nil(t, shipment.CurrentLocation)
	assert.Nil(t, shipment.LatestEvent())
	assert.Equal(t, "express", shipment.ServiceType)

	// Check domain event
	events := shipment.GetDomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, "swiftship.shipments.shipment-created", events[0].EventType())
}

func TestShipment_AddTrackingEvent(t *testing.T) {
	shipment := testShipment(t)

	err := shipment.AddTrackingEvent(domain.ShipmentStatusPickedUp, "New York", "JFK Hub", "Package picked up")
	require.NoError(t, err)
	err = shipment.AddTrackingEvent(domain.ShipmentStatusInTransit, "London", "Heathrow Gateway", "Arrived at destination country")
	require.NoError(t, err)

	assert.Equal(t, domain.ShipmentStatusInTransit, shipment.Status)
	require.Len(t, shipment.TrackingHistory, 2)
	assert.Equal(t, "New York", shipment.TrackingHistory[0].Location)
	assert.Equal(t, "London", shipment.TrackingHistory[1].Location)

	latest := shipment.LatestEvent()
	require.NotNil(t, latest)
	assert.Equal(t, domain.ShipmentStatusInTransit, latest.Status)

	require.NotNil(t, shipment.CurrentLocation)
	assert.Equal(t, "London", shipment.CurrentLocation.City)
	assert.Equal(t, "Heathrow Gateway", shipment.CurrentLocation.Facility)
}

func TestShipment_AddTrackingEvent_InvalidStatus(t *testing.T) {
	shipment := testShipment(t)

	err := shipment.AddTrackingEvent("teleported", "Narnia", "", "")

	assert.Equal(t, domain.ErrInvalidShipmentStatus, err)
	assert.Empty(t, shipment.TrackingHistory)
}

func TestShipment_AddTrackingEvent_AfterDelivery(t *testing.T) {
	shipment := testShipment(t)

	require.NoError(t, shipment.AddTrackingEvent(domain.ShipmentStatusDelivered, "London", "Front Door", "Delivered"))

	err := shipment.AddTrackingEvent(domain.ShipmentStatusInTransit, "London", "Depot", "Moving again")

	assert.Equal(t, domain.ErrShipmentDelivered, err)
	assert.Len(t, shipment.TrackingHistory, 1)
}

func TestNormalizeTrackingNumber(t *testing.T) {
	assert.Equal(t, "SS123456789", domain.NormalizeTrackingNumber("  ss123456789  "))
	assert.Equal(t, "SS123456789", domain.NormalizeTrackingNumber("SS123456789"))
}

func TestNewTrackingNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^SS\d{9}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, domain.NewTrackingNumber())
	}
}
