package donation

// OfficePostalCode is the postal code of the drop-off office. Pickup
// addresses are compared against it.
const OfficePostalCode = "27432"

// DeliveryMode says whether a donation is dropped off or picked up
type DeliveryMode string

const (
	ModeOffice DeliveryMode = "office"
	ModePickup DeliveryMode = "pickup"
)

// DeliveryModes lists all delivery modes in form order
var DeliveryModes = []DeliveryMode{ModeOffice, ModePickup}

// Clothing is the kind of clothing being donated
type Clothing string

// ClothingOptions lists the clothing kinds offered in the form
var ClothingOptions = []Clothing{
	"Winterbekleidung",
	"Sommerbekleidung",
	"Kinderbekleidung",
	"Schuhe",
	"Gemischt",
}

// CrisisRegion is the region a donation is earmarked for
type CrisisRegion string

// CrisisRegionOptions lists the crisis regions offered in the form
var CrisisRegionOptions = []CrisisRegion{
	"Sudan",
	"Gaza",
	"Ukraine",
	"Syrien",
	"Jemen",
	"Afghanistan",
	"Südsudan",
}

// PickupTimeSlot is one of the fixed daily pickup windows
type PickupTimeSlot string

const (
	SlotMorning   PickupTimeSlot = "10-14"
	SlotAfternoon PickupTimeSlot = "14-18"
)

// PickupTimeSlots lists the pickup windows in chronological order
var PickupTimeSlots = []PickupTimeSlot{SlotMorning, SlotAfternoon}

// Hours returns the start and end hour of the slot. ok is false for
// unknown slots.
func (s PickupTimeSlot) Hours() (start, end int, ok bool) {
	switch s {
	case SlotMorning:
		return 10, 14, true
	case SlotAfternoon:
		return 14, 18, true
	}
	return 0, 0, false
}

// FormData is a single submission of the donation form. The address and
// appointment fields are only meaningful in pickup mode; empty means absent.
type FormData struct {
	Mode           DeliveryMode   `json:"mode"`
	ClothingType   Clothing       `json:"clothingType"`
	CrisisRegion   CrisisRegion   `json:"crisisRegion"`
	Street         string         `json:"street,omitempty"`
	PostalCode     string         `json:"postalCode,omitempty"`
	City           string         `json:"city,omitempty"`
	PickupDate     string         `json:"pickupDate,omitempty"`
	PickupTimeSlot PickupTimeSlot `json:"pickupTimeSlot,omitempty"`
}

// IsKnownClothing reports whether c is one of ClothingOptions
func IsKnownClothing(c Clothing) bool {
	for _, o := range ClothingOptions {
		if o == c {
			return true
		}
	}
	return false
}

// IsKnownCrisisRegion reports whether r is one of CrisisRegionOptions
func IsKnownCrisisRegion(r CrisisRegion) bool {
	for _, o := range CrisisRegionOptions {
		if o == r {
			return true
		}
	}
	return false
}

// IsKnownDeliveryMode reports whether m is one of DeliveryModes
func IsKnownDeliveryMode(m DeliveryMode) bool {
	return m == ModeOffice || m == ModePickup
}
