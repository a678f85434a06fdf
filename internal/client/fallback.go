package client

// ReferenceShipment is a canned tracking record used when the remote lookup
// cannot answer. The delivery text is pre-phrased because these records have
// no underlying timestamp.
type ReferenceShipment struct {
	Status   string
	Update   string
	Delivery string
}

// referenceShipments is the fixed offline tracking dataset, keyed by
// normalized tracking number.
var referenceShipments = map[string]ReferenceShipment{
	"SS123456789": {
		Status:   "In Transit",
		Update:   "Package departed from London distribution center",
		Delivery: "Tomorrow by 5:00 PM",
	},
	"SS987654321": {
		Status:   "Out for Delivery",
		Update:   "Package is with the delivery driver in your area",
		Delivery: "Today by 3:00 PM",
	},
	"SS567890123": {
		Status:   "Delivered",
		Update:   "Package was delivered to front door",
		Delivery: "Yesterday at 2:30 PM",
	},
}
