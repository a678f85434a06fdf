package domain_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

func testQuoteRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		SenderName:         "Ada Lovelace",
		SenderEmail:        "Ada@Example.COM",
		OriginCountry:      "us",
		DestinationCountry: "uk",
		ServiceType:        "Express",
		Weight:             2.5,
		Dimensions:         "30x20x10",
		PackageType:        "box",
		InsuranceValue:     500,
	}
}

func TestNewQuote(t *testing.T) {
	quote, err := domain.NewQuote(testQuoteRequest(), domain.DefaultRateTable(), domain.DefaultServiceCatalog())

	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.NotEmpty(t, quote.QuoteID)
	assert.Regexp(t, regexp.MustCompile(`^QT-\d{8}-[0-9A-F]{6}$`), quote.QuoteNumber)
	assert.Equal(t, "US", quote.OriginCountry)
	assert.Equal(t, "UK", quote.DestinationCountry)
	assert.Equal(t, "express", quote.ServiceType)
	assert.Equal(t, "ada@example.com", quote.SenderEmail)
	assert.InDelta(t, 27.0, quote.BasePrice, 1e-9)
	assert.InDelta(t, 5.0, quote.InsuranceCost, 1e-9)
	assert.False(t, quote.Converted())

	// Check domain event
	events := quote.GetDomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, "swiftship.quotes.quote-created", events[0].EventType())
}

func TestNewQuote_Validity(t *testing.T) {
	quote, err := domain.NewQuote(testQuoteRequest(), domain.DefaultRateTable(), domain.DefaultServiceCatalog())
	require.NoError(t, err)

	assert.WithinDuration(t, quote.CreatedAt.Add(domain.QuoteValidity), quote.ValidUntil, time.Second)
	assert.False(t, quote.Expired(quote.CreatedAt.Add(29*24*time.Hour)))
	assert.True(t, quote.Expired(quote.CreatedAt.Add(31*24*time.Hour)))
}

func TestNewQuote_InvalidRoute(t *testing.T) {
	req := testQuoteRequest()
	req.DestinationCountry = "US"

	quote, err := domain.NewQuote(req, domain.DefaultRateTable(), domain.DefaultServiceCatalog())

	assert.Nil(t, quote)
	assert.Equal(t, domain.ErrInvalidRoute, err)
}

func TestQuote_MarkConverted(t *testing.T) {
	quote, err := domain.NewQuote(testQuoteRequest(), domain.DefaultRateTable(), domain.DefaultServiceCatalog())
	require.NoError(t, err)

	err = quote.MarkConverted("SHIP-001", "SS123456789")

	require.NoError(t, err)
	assert.True(t, quote.Converted())
	assert.Equal(t, "SHIP-001", quote.ShipmentID)

	// Check domain event
	events := quote.GetDomainEvents()
	assert.Len(t, events, 2) // Created + Converted
}

func TestQuote_MarkConverted_Twice(t *testing.T) {
	quote, err := domain.NewQuote(testQuoteRequest(), domain.DefaultRateTable(), domain.DefaultServiceCatalog())
	require.NoError(t, err)

	require.NoError(t, quote.MarkConverted("SHIP-001", "SS123456789"))
	err = quote.MarkConverted("SHIP-002", "SS987654321")

	assert.Equal(t, domain.ErrQuoteAlreadyConverted, err)
	assert.Equal(t, "SHIP-001", quote.ShipmentID)
}
