package client

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

// ValidationError reports bad or missing user input. It is raised before any
// network call and never triggers the local fallback.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QuoteForm is the user's quote input. Route and service are validated
// locally before the remote service is contacted; sender details are
// optional free text, and a non-positive weight falls back to the standard
// one-kilogram default.
type QuoteForm struct {
	SenderName         string  `json:"senderName"`
	SenderEmail        string  `json:"senderEmail" validate:"omitempty,email"`
	OriginCountry      string  `json:"originCountry" validate:"required"`
	DestinationCountry string  `json:"destinationCountry" validate:"required,nefield=OriginCountry"`
	ServiceType        string  `json:"serviceType" validate:"required"`
	Weight             float64 `json:"weight"`
	Dimensions         string  `json:"dimensions"`
	PackageType        string  `json:"packageType"`
	InsuranceValue     float64 `json:"insuranceValue" validate:"gte=0"`
}

// QuoteView is the rendered quote result. Remote and local paths fill the
// same fields; QuoteNumber is empty when the quote was computed locally.
type QuoteView struct {
	ServiceName      string
	Route            string
	DeliveryEstimate string
	BasePrice        float64
	InsuranceCost    float64
	Surcharge        float64
	TotalPrice       float64
	QuoteNumber      string
	Source           QuoteSource
}

// QuoteSource records which path produced a QuoteView.
type QuoteSource string

const (
	SourceRemote QuoteSource = "remote"
	SourceLocal  QuoteSource = "local"
)

// TrackingView is the rendered tracking result. Every lookup ends in one of
// these; a miss renders as status "Not Found".
type TrackingView struct {
	TrackingNumber   string
	Status           string
	LatestUpdate     string
	DeliveryEstimate string
	Found            bool
}

// BookingView is the rendered booking outcome. TrackingNumber is empty when
// the booking fell back to the acknowledgment message.
type BookingView struct {
	TrackingNumber string
	Message        string
}

// Client reconciles the remote quote service with a local calculator. Every
// remote failure past input validation resolves to a locally computed result,
// so user actions always end in a rendered view.
type Client struct {
	remote   RemoteAPI
	rates    domain.RateTable
	catalog  domain.ServiceCatalog
	state    *StateStore
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a reconciling client around the given remote API and state
// store.
func New(remote RemoteAPI, state *StateStore, logger *slog.Logger) *Client {
	return &Client{
		remote:   remote,
		rates:    domain.DefaultRateTable(),
		catalog:  domain.DefaultServiceCatalog(),
		state:    state,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitQuote validates the form, attempts the remote quote service, and
// falls back to the local calculator on any transport failure or server
// rejection. A successful remote quote is persisted for later booking; a
// local fallback clears any persisted quote so booking cannot convert a
// quote the server never stored.
func (c *Client) SubmitQuote(ctx context.Context, form QuoteForm) (*QuoteView, error) {
	if form.Weight <= 0 || math.IsNaN(form.Weight) {
		form.Weight = domain.DefaultWeight
	}
	if err := c.validate.Struct(form); err != nil {
		return nil, &ValidationError{Message: validationMessage(err)}
	}

	remote, err := c.remote.CreateQuote(ctx, form)
	if err == nil {
		if saveErr := c.state.Save(QuoteState{
			QuoteID:     remote.QuoteID,
			QuoteNumber: remote.QuoteNumber,
			TotalPrice:  remote.TotalPrice,
		}); saveErr != nil {
			c.logger.Warn("Failed to persist quote state", "error", saveErr)
		}
		view := c.renderQuote(remote.OriginCountry, remote.DestinationCountry, remote.ServiceType,
			remote.BasePrice, remote.InsuranceCost, remote.Surcharge, remote.TotalPrice)
		view.QuoteNumber = remote.QuoteNumber
		view.Source = SourceRemote
		return view, nil
	}

	c.logger.Warn("Remote quote failed, computing locally", "error", err)
	if clearErr := c.state.Clear(); clearErr != nil {
		c.logger.Warn("Failed to clear quote state", "error", clearErr)
	}
	return c.localQuote(form)
}

// localQuote runs the calculator with the same inputs the remote call used.
func (c *Client) localQuote(form QuoteForm) (*QuoteView, error) {
	breakdown, err := domain.CalculateQuote(c.rates, c.catalog,
		form.OriginCountry, form.DestinationCountry, form.ServiceType,
		form.Weight, form.InsuranceValue)
	if err != nil {
		return nil, err
	}

	view := c.renderQuote(form.OriginCountry, form.DestinationCountry, form.ServiceType,
		breakdown.BasePrice, breakdown.InsuranceCost, breakdown.Surcharge, breakdown.TotalPrice)
	view.Source = SourceLocal
	return view, nil
}

// renderQuote builds the common view fields shared by both quote paths.
func (c *Client) renderQuote(origin, destination, serviceType string, base, insurance, surcharge, total float64) *QuoteView {
	serviceName := serviceType
	deliveryEstimate := ""
	if def, ok := c.catalog.Lookup(serviceType); ok {
		serviceName = def.DisplayName
		deliveryEstimate = def.DeliveryWindow
	}

	return &QuoteView{
		ServiceName:      serviceName,
		Route:            fmt.Sprintf("%s to %s", domain.CountryName(origin), domain.CountryName(destination)),
		DeliveryEstimate: deliveryEstimate,
		BasePrice:        domain.Round2(base),
		InsuranceCost:    domain.Round2(insurance),
		Surcharge:        domain.Round2(surcharge),
		TotalPrice:       domain.Round2(total),
	}
}

// Track looks up a tracking number, preferring the remote service. If the
// remote path fails or has no record, the fixed reference dataset answers;
// a miss there is terminal and renders as "Not Found".
func (c *Client) Track(ctx context.Context, trackingNumber string) *TrackingView {
	number := domain.NormalizeTrackingNumber(trackingNumber)

	shipment, err := c.remote.Track(ctx, number)
	if err == nil && shipment != nil {
		return c.renderShipment(shipment)
	}
	if err != nil {
		c.logger.Warn("Remote tracking failed, checking reference data", "trackingNumber", number, "error", err)
	}

	if ref, ok := referenceShipments[number]; ok {
		return &TrackingView{
			TrackingNumber:   number,
			Status:           ref.Status,
			LatestUpdate:     ref.Update,
			DeliveryEstimate: ref.Delivery,
			Found:            true,
		}
	}

	return &TrackingView{
		TrackingNumber:   number,
		Status:           "Not Found",
		LatestUpdate:     "We couldn't find a shipment with this tracking number. Please check the number and try again.",
		DeliveryEstimate: "N/A",
	}
}

// renderShipment converts a remote shipment into the tracking view.
func (c *Client) renderShipment(shipment *RemoteShipment) *TrackingView {
	update := ""
	if n := len(shipment.TrackingHistory); n > 0 {
		latest := shipment.TrackingHistory[n-1]
		update = fmt.Sprintf("%s - %s", latest.Description, latest.Location)
	} else if shipment.CurrentLocation != nil {
		update = fmt.Sprintf("At %s in %s", shipment.CurrentLocation.Facility, shipment.CurrentLocation.City)
	} else {
		update = "No tracking updates available"
	}

	delivery := "Estimated delivery not available"
	if !shipment.EstimatedDelivery.IsZero() {
		delivery = FormatDeliveryEstimate(shipment.EstimatedDelivery, c.now())
	}

	return &TrackingView{
		TrackingNumber:   shipment.TrackingNumber,
		Status:           displayStatus(shipment.Status),
		LatestUpdate:     update,
		DeliveryEstimate: delivery,
		Found:            true,
	}
}

// Book attempts to convert the persisted remote quote into a shipment. With
// no persisted quote, or on any conversion failure, it renders the generic
// acknowledgment instead; booking never errors.
func (c *Client) Book(ctx context.Context) *BookingView {
	state := c.state.Load()
	if state.QuoteID == "" {
		return c.acknowledgment(state)
	}

	conversion, err := c.remote.ConvertQuote(ctx, state.QuoteID)
	if err != nil {
		c.logger.Warn("Remote conversion failed", "quoteId", state.QuoteID, "error", err)
		return c.acknowledgment(state)
	}

	return &BookingView{
		TrackingNumber: conversion.TrackingNumber,
		Message: fmt.Sprintf("Shipment created successfully. Tracking number: %s. A shipping specialist will contact you shortly.",
			conversion.TrackingNumber),
	}
}

func (c *Client) acknowledgment(state QuoteState) *BookingView {
	message := "Thank you for your booking. A shipping specialist will contact you shortly to complete the booking."
	if state.TotalPrice > 0 {
		message = fmt.Sprintf("Thank you for your booking. Your total is $%.2f. A shipping specialist will contact you shortly to complete the booking.",
			state.TotalPrice)
	}
	return &BookingView{Message: message}
}

// FormatDeliveryEstimate phrases an estimated delivery time relative to now:
// "Today by 3:00 PM", "Tomorrow by 3:00 PM", or a full date for anything
// further out.
func FormatDeliveryEstimate(estimate, now time.Time) string {
	estimate = estimate.In(now.Location())
	clock := estimate.Format("3:04 PM")

	switch {
	case sameDay(estimate, now):
		return "Today by " + clock
	case sameDay(estimate, now.AddDate(0, 0, 1)):
		return "Tomorrow by " + clock
	default:
		return estimate.Format("01/02/2006") + " by " + clock
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// displayStatus maps wire statuses to human-readable form.
func displayStatus(status string) string {
	switch domain.ShipmentStatus(status) {
	case domain.ShipmentStatusPending:
		return "Pending"
	case domain.ShipmentStatusPickedUp:
		return "Picked Up"
	case domain.ShipmentStatusInTransit:
		return "In Transit"
	case domain.ShipmentStatusOutForDelivery:
		return "Out for Delivery"
	case domain.ShipmentStatusDelivered:
		return "Delivered"
	case domain.ShipmentStatusDelayed:
		return "Delayed"
	case domain.ShipmentStatusException:
		return "Exception"
	default:
		return status
	}
}

// validationMessage flattens validator output into a single user-facing line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Please fill in all required fields."
	}

	first := errs[0]
	switch {
	case first.Field() == "DestinationCountry" && first.Tag() == "nefield":
		return "Origin and destination countries must be different."
	case first.Tag() == "email":
		return "Please provide a valid email address."
	default:
		return fmt.Sprintf("Please provide a value for %s.", first.Field())
	}
}
