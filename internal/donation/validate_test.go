package donation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNearOffice(t *testing.T) {
	tests := []struct {
		name   string
		donor  string
		office string
		want   bool
	}{
		{"same region", "27432", "27404", true},
		{"identical", "27432", "27432", true},
		{"different region", "27432", "28500", false},
		{"too short", "2743", "27404", false},
		{"letters", "abcde", "27404", false},
		{"empty donor", "", "27404", false},
		{"empty office", "27432", "", false},
		{"too long", "274321", "27404", false},
		{"padded", " 27432", "27404", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNearOffice(tt.donor, tt.office))
		})
	}
}

func TestIsNearOffice_SymmetricOnValidCodes(t *testing.T) {
	codes := []string{"27432", "27404", "28500", "01067", "99999", "27000", "72743"}
	for _, a := range codes {
		for _, b := range codes {
			assert.Equal(t, IsNearOffice(a, b), IsNearOffice(b, a), "%s/%s", a, b)
			assert.Equal(t, a[:2] == b[:2], IsNearOffice(a, b), "%s/%s", a, b)
		}
	}
}

func validPickup() FormData {
	return FormData{
		Mode:           ModePickup,
		ClothingType:   "Winterbekleidung",
		CrisisRegion:   "Jemen",
		Street:         "Musterstraße 1",
		PostalCode:     "27404",
		City:           "Zeven",
		PickupDate:     "2026-02-13",
		PickupTimeSlot: SlotMorning,
	}
}

func TestValidateDonation(t *testing.T) {
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		data func() FormData
		want FieldErrors
	}{
		{
			name: "office mode needs no address",
			data: func() FormData {
				return FormData{Mode: ModeOffice, ClothingType: "Winterbekleidung", CrisisRegion: "Jemen"}
			},
		},
		{
			name: "office mode ignores invalid pickup fields",
			data: func() FormData {
				d := validPickup()
				d.Mode = ModeOffice
				d.PostalCode = "abc"
				d.PickupDate = "2026-02-14"
				return d
			},
		},
		{
			name: "valid pickup",
			data: validPickup,
		},
		{
			name: "pickup with surrounding whitespace",
			data: func() FormData {
				d := validPickup()
				d.PostalCode = " 27404 "
				d.PickupDate = " 2026-02-13\t"
				return d
			},
		},
		{
			name: "postal code too far away",
			data: func() FormData {
				d := validPickup()
				d.PostalCode = "28500"
				return d
			},
			want: FieldErrors{FieldPostalCode: MsgPostalCodeTooFar},
		},
		{
			name: "postal code malformed",
			data: func() FormData {
				d := validPickup()
				d.PostalCode = "2740"
				return d
			},
			want: FieldErrors{FieldPostalCode: MsgPostalCodeFormat},
		},
		{
			name: "blank clothing in office mode",
			data: func() FormData {
				return FormData{Mode: ModeOffice, ClothingType: "", CrisisRegion: "Jemen"}
			},
			want: FieldErrors{FieldClothingType: MsgClothingRequired},
		},
		{
			name: "whitespace crisis region in pickup mode",
			data: func() FormData {
				d := validPickup()
				d.CrisisRegion = "   "
				return d
			},
			want: FieldErrors{FieldCrisisRegion: MsgCrisisRegionRequired},
		},
		{
			name: "pickup date on a weekend",
			data: func() FormData {
				d := validPickup()
				d.PickupDate = "2026-02-14"
				return d
			},
			want: FieldErrors{FieldPickupDate: MsgPickupDateUnavailable},
		},
		{
			name: "empty pickup collects every error",
			data: func() FormData {
				return FormData{Mode: ModePickup}
			},
			want: FieldErrors{
				FieldClothingType:   MsgClothingRequired,
				FieldCrisisRegion:   MsgCrisisRegionRequired,
				FieldStreet:         MsgStreetRequired,
				FieldPostalCode:     MsgPostalCodeRequired,
				FieldCity:           MsgCityRequired,
				FieldPickupDate:     MsgPickupDateRequired,
				FieldPickupTimeSlot: MsgPickupTimeSlotRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDonation(tt.data(), OfficePostalCode, today)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}

			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.want, fe)
		})
	}
}

func TestValidateDonation_BlankRequiredFieldsInEveryMode(t *testing.T) {
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	for _, mode := range DeliveryModes {
		t.Run(fmt.Sprintf("%s clothing", mode), func(t *testing.T) {
			d := validPickup()
			d.Mode = mode
			d.ClothingType = ""

			var fe FieldErrors
			require.ErrorAs(t, ValidateDonation(d, OfficePostalCode, today), &fe)
			assert.NotEmpty(t, fe[FieldClothingType])
		})
		t.Run(fmt.Sprintf("%s crisis region", mode), func(t *testing.T) {
			d := validPickup()
			d.Mode = mode
			d.CrisisRegion = ""

			var fe FieldErrors
			require.ErrorAs(t, ValidateDonation(d, OfficePostalCode, today), &fe)
			assert.NotEmpty(t, fe[FieldCrisisRegion])
		})
	}
}

func TestValidator_HolidayPolicy(t *testing.T) {
	today := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)
	d := validPickup()
	d.PickupDate = "2026-04-06"

	require.NoError(t, ValidateDonation(d, OfficePostalCode, today))

	v := Validator{OfficePostalCode: OfficePostalCode, Policy: PickupPolicy{ExcludeHolidays: true}}
	var fe FieldErrors
	require.ErrorAs(t, v.Validate(d, today), &fe)
	assert.Equal(t, MsgPickupDateUnavailable, fe[FieldPickupDate])
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{FieldStreet: "b", FieldCity: "a"}
	assert.Equal(t, "invalid donation: city: a; street: b", fe.Error())
}
