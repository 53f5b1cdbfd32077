package app

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
)

// registrationRequest is the JSON body of POST /api/registrations. The
// option tags only reject values that are not offered by the form; missing
// values are reported by donation.Validator.
type registrationRequest struct {
	Mode           string `json:"mode" validate:"deliverymode"`
	ClothingType   string `json:"clothingType" validate:"omitempty,clothing"`
	CrisisRegion   string `json:"crisisRegion" validate:"omitempty,crisisregion"`
	Street         string `json:"street"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	PickupDate     string `json:"pickupDate"`
	PickupTimeSlot string `json:"pickupTimeSlot" validate:"omitempty,timeslot"`
}

// FormData converts the request into the form the rules operate on.
// Pickup-only fields are dropped unless the donor asked for a pickup.
func (r registrationRequest) FormData() donation.FormData {
	form := donation.FormData{
		Mode:         donation.DeliveryMode(r.Mode),
		ClothingType: donation.Clothing(strings.TrimSpace(r.ClothingType)),
		CrisisRegion: donation.CrisisRegion(strings.TrimSpace(r.CrisisRegion)),
	}
	if form.Mode == donation.ModePickup {
		form.Street = r.Street
		form.PostalCode = r.PostalCode
		form.City = r.City
		form.PickupDate = r.PickupDate
		form.PickupTimeSlot = donation.PickupTimeSlot(strings.TrimSpace(r.PickupTimeSlot))
	}
	return form
}

var optionMessages = map[string]string{
	"deliverymode": "Bitte wählen Sie aus, ob Sie die Spende abgeben oder abholen lassen möchten.",
	"clothing":     "Die ausgewählte Art der Kleidung wird nicht angeboten.",
	"crisisregion": "Das ausgewählte Krisengebiet wird nicht angeboten.",
	"timeslot":     "Der ausgewählte Abholungszeitslot wird nicht angeboten.",
}

// OptionChecker rejects form values outside the offered option lists
type OptionChecker struct {
	validate *validator.Validate
}

// NewOptionChecker registers the option tags on a fresh validator
func NewOptionChecker() *OptionChecker {
	v := validator.New()

	// Report fields by their JSON name so they line up with donation.Field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tag names or nil functions
	_ = v.RegisterValidation("deliverymode", func(fl validator.FieldLevel) bool {
		return donation.IsKnownDeliveryMode(donation.DeliveryMode(fl.Field().String()))
	})
	_ = v.RegisterValidation("clothing", func(fl validator.FieldLevel) bool {
		return donation.IsKnownClothing(donation.Clothing(strings.TrimSpace(fl.Field().String())))
	})
	_ = v.RegisterValidation("crisisregion", func(fl validator.FieldLevel) bool {
		return donation.IsKnownCrisisRegion(donation.CrisisRegion(strings.TrimSpace(fl.Field().String())))
	})
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		_, _, ok := donation.PickupTimeSlot(strings.TrimSpace(fl.Field().String())).Hours()
		return ok
	})

	return &OptionChecker{validate: v}
}

// Check returns one message per field holding a value the form does not
// offer. The time slot is only checked for pickups.
func (c *OptionChecker) Check(req registrationRequest) donation.FieldErrors {
	errs := donation.FieldErrors{}

	err := c.validate.Struct(req)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[donation.FieldMode] = optionMessages["deliverymode"]
		return errs
	}

	for _, fe := range verrs {
		field := donation.Field(fe.Field())
		if field == donation.FieldPickupTimeSlot && req.Mode != string(donation.ModePickup) {
			continue
		}
		msg, ok := optionMessages[fe.Tag()]
		if !ok {
			msg = "Ungültiger Wert."
		}
		errs[field] = msg
	}
	return errs
}
