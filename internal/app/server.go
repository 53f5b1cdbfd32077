package app

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
	"github.com/klabast/wb-services/kleiderspende/internal/registration"
)

// Server serves the donation form and its JSON API
type Server struct {
	cfg       Config
	state     *registration.State
	validator donation.Validator
	options   *OptionChecker
	auth      *Authenticator
	metrics   *Metrics

	indexHTML []byte
	static    fs.FS

	now   func() time.Time
	newID func() uuid.UUID
}

// Option customizes a Server
type Option func(*Server)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithIDs replaces the registration ID generator
func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Server) { s.newID = newID }
}

// WithStatic sets the form page and the static asset tree served under /static/
func WithStatic(index []byte, static fs.FS) Option {
	return func(s *Server) {
		s.indexHTML = index
		s.static = static
	}
}

// WithAuthenticator protects the registration view
func WithAuthenticator(a *Authenticator) Option {
	return func(s *Server) { s.auth = a }
}

// NewServer wires the rules to the given registration state
func NewServer(cfg Config, state *registration.State, opts ...Option) *Server {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	s := &Server{
		cfg:   cfg,
		state: state,
		validator: donation.Validator{
			OfficePostalCode: cfg.OfficePostalCode,
			Policy:           cfg.PickupPolicy(),
		},
		options: NewOptionChecker(),
		auth:    &Authenticator{},
		metrics: NewMetrics(),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP handler of the service
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.ServeIndex)
	if s.static != nil {
		r.Handle("/static/*", http.FileServer(http.FS(s.static)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.GetConfig)
		r.Get("/pickup-dates", s.GetPickupDates)
		r.Get("/near-office", s.GetNearOffice)
		r.Post("/registrations", s.CreateRegistration)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Get("/registrations/last", s.GetLastRegistration)
			r.Get("/registrations/last/appointment.ics", s.GetAppointment)
		})
	})

	r.Handle("/metrics", s.metrics.Handler())

	return r
}

// today is the current moment in the office's time zone
func (s *Server) today() time.Time {
	return s.now().In(s.cfg.Location)
}
