// Package registration holds confirmed donation registrations and the
// state handle that remembers the most recent one.
package registration

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
)

// Registration is either an OfficeRegistration or a PickupRegistration
type Registration interface {
	Mode() donation.DeliveryMode
	Common() Base
	sealed()
}

// Base holds the fields shared by every registration
type Base struct {
	ID           uuid.UUID             `json:"id"`
	ClothingType donation.Clothing     `json:"clothingType"`
	CrisisRegion donation.CrisisRegion `json:"crisisRegion"`
	Timestamp    time.Time             `json:"timestamp"`
}

// OfficeRegistration is a donation dropped off at the office
type OfficeRegistration struct {
	Base
}

// PickupRegistration is a donation collected at the donor's address
type PickupRegistration struct {
	Base
	Street         string                  `json:"street"`
	PostalCode     string                  `json:"postalCode"`
	City           string                  `json:"city"`
	PickupDate     string                  `json:"pickupDate"`
	PickupTimeSlot donation.PickupTimeSlot `json:"pickupTimeSlot"`
}

func (OfficeRegistration) Mode() donation.DeliveryMode { return donation.ModeOffice }
func (r OfficeRegistration) Common() Base { return r.Base }
func (OfficeRegistration) sealed() {}

func (PickupRegistration) Mode() donation.DeliveryMode { return donation.ModePickup }
func (r PickupRegistration) Common() Base { return r.Base }
func (PickupRegistration) sealed() {}

// MarshalJSON adds the mode discriminator
func (r OfficeRegistration) MarshalJSON() ([]byte, error) {
	type plain OfficeRegistration
	return json.Marshal(struct {
		Mode donation.DeliveryMode `json:"mode"`
		plain
	}{r.Mode(), plain(r)})
}

// MarshalJSON adds the mode discriminator
func (r PickupRegistration) MarshalJSON() ([]byte, error) {
	type plain PickupRegistration
	return json.Marshal(struct {
		Mode donation.DeliveryMode `json:"mode"`
		plain
	}{r.Mode(), plain(r)})
}

// New builds the registration for an already validated form. Pickup-only
// fields are dropped for office registrations.
func New(form donation.FormData, id uuid.UUID, at time.Time) Registration {
	base := Base{
		ID:           id,
		ClothingType: donation.Clothing(strings.TrimSpace(string(form.ClothingType))),
		CrisisRegion: donation.CrisisRegion(strings.TrimSpace(string(form.CrisisRegion))),
		Timestamp:    at,
	}

	if form.Mode != donation.ModePickup {
		return OfficeRegistration{Base: base}
	}

	return PickupRegistration{
		Base:           base,
		Street:         strings.TrimSpace(form.Street),
		PostalCode:     strings.TrimSpace(form.PostalCode),
		City:           strings.TrimSpace(form.City),
		PickupDate:     strings.TrimSpace(form.PickupDate),
		PickupTimeSlot: form.PickupTimeSlot,
	}
}
