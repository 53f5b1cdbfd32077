package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"net/http"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
	"github.com/klabast/wb-services/kleiderspende/internal/registration"
)

type registrationResponse struct {
	Registration     registration.Registration `json:"registration"`
	DisplayTimestamp string                    `json:"displayTimestamp"`
}

// ServeIndex serves the donation form
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if s.indexHTML == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(s.indexHTML); err != nil {
		log.Printf("Error writing index HTML: %v", err)
	}
}

// GetConfig returns everything the form needs to render its options
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	today := s.today()

	config := map[string]any{
		"officePostalCode":    s.cfg.OfficePostalCode,
		"deliveryModes":       donation.DeliveryModes,
		"clothingOptions":     donation.ClothingOptions,
		"crisisRegionOptions": donation.CrisisRegionOptions,
		"pickupTimeSlots":     donation.PickupTimeSlots,
		"pickupLeadDays":      donation.PickupLeadDays,
		"locale":              s.cfg.Locale,
		"excludeHolidays":     s.cfg.ExcludeHolidays,
	}

	// Offered dates can run into the next year
	if s.cfg.ExcludeHolidays {
		holidays := donation.LowerSaxonyHolidays(today.Year())
		maps.Copy(holidays, donation.LowerSaxonyHolidays(today.Year()+1))
		config["holidays"] = holidays
	}

	writeJSON(w, http.StatusOK, config)
}

// GetPickupDates lists bookable pickup dates
// Query param: count (optional, 1..90, defaults to 30)
func (s *Server) GetPickupDates(w http.ResponseWriter, r *http.Request) {
	count, ok := parseCount(r.URL.Query().Get("count"), donation.DefaultPickupDateCount, maxPickupDateCount)
	if !ok {
		http.Error(w, ErrInvalidCount, http.StatusBadRequest)
		return
	}

	dates := s.validator.Policy.AvailableDates(s.today(), count)
	writeJSON(w, http.StatusOK, map[string]any{"dates": dates})
}

// GetNearOffice tells the form early whether a pickup address is served
// Query param: postalCode
func (s *Server) GetNearOffice(w http.ResponseWriter, r *http.Request) {
	plz := r.URL.Query().Get("postalCode")
	writeJSON(w, http.StatusOK, map[string]any{
		"postalCode": plz,
		"near":       donation.IsNearOffice(plz, s.cfg.OfficePostalCode),
	})
}

// CreateRegistration validates a submitted form and remembers it as the
// last registration
func (s *Server) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidBody, http.StatusBadRequest)
		return
	}

	today := s.today()
	form := req.FormData()

	errs := s.options.Check(req)
	if err := s.validator.Validate(form, today); err != nil {
		var fe donation.FieldErrors
		if !errors.As(err, &fe) {
			log.Printf("Error validating registration: %v", err)
			http.Error(w, ErrInternalServer, http.StatusInternalServerError)
			return
		}
		// Missing values win over unknown ones
		maps.Copy(errs, fe)
	}

	if len(errs) > 0 {
		s.metrics.ObserveRejected(errs)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	reg := registration.New(form, s.newID(), today)
	s.state.Set(reg)
	s.metrics.IncrementRegistrations(reg.Mode())
	log.Printf("✅ Registration %s accepted (mode: %s)", reg.Common().ID, reg.Mode())

	writeJSON(w, http.StatusCreated, s.response(reg))
}

// GetLastRegistration returns the most recent registration
func (s *Server) GetLastRegistration(w http.ResponseWriter, r *http.Request) {
	reg, ok := s.state.Last()
	if !ok {
		http.Error(w, ErrNoRegistration, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.response(reg))
}

// GetAppointment downloads the pickup appointment of the last registration
func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request) {
	reg, ok := s.state.Last()
	if !ok {
		http.Error(w, ErrNoRegistration, http.StatusNotFound)
		return
	}
	pickup, ok := reg.(registration.PickupRegistration)
	if !ok {
		http.Error(w, ErrNoPickupAppointment, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := GenerateAppointmentICS(&buf, pickup, s.cfg.Location, s.now()); err != nil {
		log.Printf("Error generating appointment: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=abholung_%s.ics", pickup.PickupDate))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing appointment: %v", err)
	}
}

func (s *Server) response(reg registration.Registration) registrationResponse {
	ts := reg.Common().Timestamp.In(s.cfg.Location)
	return registrationResponse{
		Registration:     reg,
		DisplayTimestamp: donation.FormatDonationTime(ts, s.cfg.Locale),
	}
}
