package donation

import (
	"sort"
	"strings"
	"time"
)

// Field names a FormData property as it appears on the wire
type Field string

const (
	FieldMode           Field = "mode"
	FieldClothingType   Field = "clothingType"
	FieldCrisisRegion   Field = "crisisRegion"
	FieldStreet         Field = "street"
	FieldPostalCode     Field = "postalCode"
	FieldCity           Field = "city"
	FieldPickupDate     Field = "pickupDate"
	FieldPickupTimeSlot Field = "pickupTimeSlot"
)

// Messages shown next to the offending form field
const (
	MsgClothingRequired       = "Bitte wählen Sie eine Art der Kleidung aus."
	MsgCrisisRegionRequired   = "Bitte wählen Sie ein Krisengebiet aus."
	MsgStreetRequired         = "Bitte geben Sie eine Straße und Hausnummer an."
	MsgPostalCodeRequired     = "Bitte geben Sie eine Postleitzahl an."
	MsgPostalCodeFormat       = "Die Postleitzahl muss aus genau fünf Zahlen bestehen."
	MsgPostalCodeTooFar       = "Die Abholadresse liegt zu weit von der Geschäftsstelle entfernt (PLZ-Bereich ungleich)."
	MsgCityRequired           = "Bitte geben Sie einen Ort an."
	MsgPickupDateRequired     = "Bitte wählen Sie ein Abholungsdatum aus."
	MsgPickupDateUnavailable  = "Das ausgewählte Abholungsdatum ist nicht verfügbar (mind. 3 Tage Vorlauf, nur Montag bis Freitag)."
	MsgPickupTimeSlotRequired = "Bitte wählen Sie einen Abholungszeitslot aus."
)

// FieldErrors maps each invalid field to one human readable message.
// A non-empty FieldErrors is the failure result of validation.
type FieldErrors map[Field]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[Field(f)])
	}
	return "invalid donation: " + strings.Join(parts, "; ")
}

// Validator checks donation submissions against an office and a pickup policy
type Validator struct {
	OfficePostalCode string
	Policy           PickupPolicy
}

// ValidateDonation validates data against officePLZ with the default pickup
// policy. It returns nil on success and FieldErrors otherwise.
func ValidateDonation(data FormData, officePLZ string, today time.Time) error {
	v := Validator{OfficePostalCode: officePLZ, Policy: DefaultPickupPolicy}
	return v.Validate(data, today)
}

// Validate collects every failing field instead of stopping at the first.
// Address and appointment fields are only checked in pickup mode.
func (v Validator) Validate(data FormData, today time.Time) error {
	errs := FieldErrors{}

	if blank(string(data.ClothingType)) {
		errs[FieldClothingType] = MsgClothingRequired
	}
	if blank(string(data.CrisisRegion)) {
		errs[FieldCrisisRegion] = MsgCrisisRegionRequired
	}

	if data.Mode == ModePickup {
		v.validatePickup(data, today, errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v Validator) validatePickup(data FormData, today time.Time, errs FieldErrors) {
	if blank(data.Street) {
		errs[FieldStreet] = MsgStreetRequired
	}

	plz := strings.TrimSpace(data.PostalCode)
	switch {
	case plz == "":
		errs[FieldPostalCode] = MsgPostalCodeRequired
	case !IsValidPostalCode(plz):
		errs[FieldPostalCode] = MsgPostalCodeFormat
	case !IsNearOffice(plz, v.OfficePostalCode):
		errs[FieldPostalCode] = MsgPostalCodeTooFar
	}

	if blank(data.City) {
		errs[FieldCity] = MsgCityRequired
	}

	date := strings.TrimSpace(data.PickupDate)
	switch {
	case date == "":
		errs[FieldPickupDate] = MsgPickupDateRequired
	case !v.Policy.IsAvailable(date, today):
		errs[FieldPickupDate] = MsgPickupDateUnavailable
	}

	if data.PickupTimeSlot == "" {
		errs[FieldPickupTimeSlot] = MsgPickupTimeSlotRequired
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
