package domain

import "strings"

// Service type codes
const (
	ServiceExpress       = "express"
	ServiceStandard      = "standard"
	ServiceEconomy       = "economy"
	ServiceInternational = "international"
	ServiceCargo         = "cargo"
)

// ServiceDefinition holds the metadata and pricing multiplier for a
// shipping service.
type ServiceDefinition struct {
	Code           string
	DisplayName    string
	DeliveryWindow string
	Multiplier     float64
	// MaxTransitDays is the upper bound of the delivery window, used to
	// compute estimated delivery dates for shipments.
	MaxTransitDays int
}

// ServiceCatalog is an immutable lookup of shipping services by code.
type ServiceCatalog struct {
	services map[string]ServiceDefinition
}

// NewServiceCatalog builds a ServiceCatalog from service definitions.
func NewServiceCatalog(defs []ServiceDefinition) ServiceCatalog {
	services := make(map[string]ServiceDefinition, len(defs))
	for _, d := range defs {
		services[normalizeServiceType(d.Code)] = d
	}
	return ServiceCatalog{services: services}
}

// Lookup returns the service definition for a code.
func (c ServiceCatalog) Lookup(code string) (ServiceDefinition, bool) {
	def, ok := c.services[normalizeServiceType(code)]
	return def, ok
}

// Codes returns all service codes in the catalog.
func (c ServiceCatalog) Codes() []string {
	codes := make([]string, 0, len(c.services))
	for code := range c.services {
		codes = append(codes, code)
	}
	return codes
}

func normalizeServiceType(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// DefaultServiceCatalog returns the five services SwiftShip offers.
func DefaultServiceCatalog() ServiceCatalog {
	return NewServiceCatalog([]ServiceDefinition{
		{Code: ServiceExpress, DisplayName: "Express Delivery", DeliveryWindow: "1-3 days", Multiplier: 1.8, MaxTransitDays: 3},
		{Code: ServiceStandard, DisplayName: "Standard Shipping", DeliveryWindow: "5-10 days", Multiplier: 1.0, MaxTransitDays: 10},
		{Code: ServiceEconomy, DisplayName: "Economy Shipping", DeliveryWindow: "10-20 days", Multiplier: 0.7, MaxTransitDays: 20},
		{Code: ServiceInternational, DisplayName: "International Priority", DeliveryWindow: "3-7 days", Multiplier: 2.2, MaxTransitDays: 7},
		{Code: ServiceCargo, DisplayName: "Cargo/Freight Shipping", DeliveryWindow: "7-14 days", Multiplier: 1.5, MaxTransitDays: 14},
	})
}
