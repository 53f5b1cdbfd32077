package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata" // office time zone must resolve on hosts without zoneinfo

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
)

// Constants
const (
	DefaultPort     = 8080
	DefaultAuthFile = "auth.secret"
	DefaultTimezone = "Europe/Berlin"

	// Error messages
	ErrInvalidCount        = "Invalid count"
	ErrInvalidBody         = "Invalid request body"
	ErrInternalServer      = "Internal server error"
	ErrNoRegistration      = "No registration yet"
	ErrNoPickupAppointment = "Last registration has no pickup appointment"

	// ICS constants
	ICSProductID = "-//Kleiderkammer//Kleiderspende//DE"

	maxPickupDateCount = 90
	maxBodyBytes       = 16 << 10
)

// Config is the runtime configuration of the service
type Config struct {
	Port             int
	OfficePostalCode string
	Locale           string
	Timezone         string
	Location         *time.Location
	ExcludeHolidays  bool
	AuthFile         string
}

// LoadConfig parses flags and falls back to environment variables for
// anything not given on the command line
func LoadConfig(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("kleiderspende", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 0, "Port to listen on (env PORT)")
	fs.StringVar(&cfg.OfficePostalCode, "office-plz", "", "Postal code of the office (env OFFICE_POSTAL_CODE)")
	fs.StringVar(&cfg.Locale, "locale", "", "Locale for displayed timestamps (env LOCALE)")
	fs.StringVar(&cfg.Timezone, "timezone", "", "IANA time zone of the office (env TIMEZONE)")
	fs.BoolVar(&cfg.ExcludeHolidays, "exclude-holidays", false, "Do not offer pickups on public holidays (env EXCLUDE_HOLIDAYS)")
	fs.StringVar(&cfg.AuthFile, "auth-file", "", "Credentials file for the registration view (env AUTH_FILE)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
		if v := os.Getenv("PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}

	if cfg.OfficePostalCode == "" {
		cfg.OfficePostalCode = getEnv("OFFICE_POSTAL_CODE", donation.OfficePostalCode)
	}
	if !donation.IsValidPostalCode(cfg.OfficePostalCode) {
		return Config{}, fmt.Errorf("invalid office postal code %q (expected five digits)", cfg.OfficePostalCode)
	}

	if cfg.Locale == "" {
		cfg.Locale = getEnv("LOCALE", donation.DefaultLocale)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = getEnv("TIMEZONE", DefaultTimezone)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if !cfg.ExcludeHolidays {
		if v := os.Getenv("EXCLUDE_HOLIDAYS"); v != "" {
			exclude, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid EXCLUDE_HOLIDAYS env variable")
			}
			cfg.ExcludeHolidays = exclude
		}
	}

	if cfg.AuthFile == "" {
		cfg.AuthFile = os.Getenv("AUTH_FILE")
	}
	if cfg.AuthFile == "" {
		path, err := defaultAuthFile()
		if err != nil {
			return Config{}, err
		}
		cfg.AuthFile = path
	}

	return cfg, nil
}

// PickupPolicy returns the pickup policy selected by the configuration
func (c Config) PickupPolicy() donation.PickupPolicy {
	return donation.PickupPolicy{ExcludeHolidays: c.ExcludeHolidays}
}

// defaultAuthFile places the credentials next to the binary
func defaultAuthFile() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
