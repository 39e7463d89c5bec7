package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"clinicbook/internal/domain"
	"clinicbook/internal/service/booking"
	"clinicbook/internal/store"
)

type bookingService interface {
	Create(ctx context.Context, in booking.CreateInput) (domain.Appointment, error)
	Cancel(ctx context.Context, id string) error
}

type calendarService interface {
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]domain.Appointment, error)
	ListUpcoming(ctx context.Context) ([]domain.Appointment, error)
	Doctors(ctx context.Context) ([]domain.Doctor, error)
}

type Server struct {
	booking  bookingService
	calendar calendarService
	validate *validator.Validate
	log      *slog.Logger
}

func NewServer(b bookingService, c calendarService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		booking:  b,
		calendar: c,
		validate: validator.New(),
		log:      log.With(slog.String("component", "rest")),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/", s.root)
	e.GET("/doctors", s.listDoctors)
	e.GET("/appointments", s.listAppointments)
	e.GET("/appointments/upcoming", s.listUpcoming)
	e.POST("/appointments", s.createAppointment)
	e.DELETE("/appointments/:appointment_id", s.cancelAppointment)
}

type createAppointmentRequest struct {
	DoctorID    int    `json:"doctor_id" validate:"required"`
	PatientName string `json:"patient_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	DateTime    string `json:"datetime" validate:"required"`
}

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the Appointment Scheduling API"})
}

func (s *Server) listDoctors(c echo.Context) error {
	doctors, err := s.calendar.Doctors(c.Request().Context())
	if err != nil {
		return s.internalError(c, "doctors list failed", err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (s *Server) listAppointments(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		appts []domain.Appointment
		err   error
	)
	if raw := c.QueryParam("doctor_id"); raw != "" {
		doctorID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return c.JSON(http.StatusBadRequest, detail("doctor_id must be an integer"))
		}
		appts, err = s.calendar.ListByDoctor(ctx, doctorID)
	} else {
		appts, err = s.calendar.List(ctx)
	}
	if err != nil {
		return s.internalError(c, "appointments list failed", err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (s *Server) listUpcoming(c echo.Context) error {
	appts, err := s.calendar.ListUpcoming(c.Request().Context())
	if err != nil {
		return s.internalError(c, "upcoming appointments list failed", err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (s *Server) createAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detail("invalid request body"))
	}
	if err := s.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detail("doctor_id, patient_name, phone_number and datetime are required"))
	}

	appt, err := s.booking.Create(c.Request().Context(), booking.CreateInput{
		DoctorID:    req.DoctorID,
		PatientName: req.PatientName,
		PhoneNumber: req.PhoneNumber,
		DateTime:    req.DateTime,
	})
	if err != nil {
		return s.writeBookingError(c, err)
	}

	s.log.Info("appointment created",
		slog.String("appointment_id", appt.ID),
		slog.Int("doctor_id", appt.DoctorID),
		slog.String("datetime", appt.DateTime.String()),
	)
	return c.JSON(http.StatusCreated, appt)
}

func (s *Server) cancelAppointment(c echo.Context) error {
	id := c.Param("appointment_id")
	if err := s.booking.Cancel(c.Request().Context(), id); err != nil {
		return s.writeBookingError(c, err)
	}

	s.log.Info("appointment canceled", slog.String("appointment_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment " + id + " canceled successfully."})
}

func (s *Server) writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDateTime):
		return c.JSON(http.StatusUnprocessableEntity, detail(err.Error()))
	case errors.Is(err, booking.ErrDoctorNotFound),
		errors.Is(err, booking.ErrAppointmentNotFound):
		return c.JSON(http.StatusNotFound, detail(err.Error()))
	case errors.Is(err, booking.ErrPastDateTime),
		errors.Is(err, booking.ErrPhoneLimitExceeded),
		errors.Is(err, booking.ErrSchedulingConflict):
		return c.JSON(http.StatusConflict, detail(err.Error()))
	}

	var pErr *store.PersistenceError
	if errors.As(err, &pErr) {
		s.log.Error("appointment save failed", slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, detail("failed to persist appointment"))
	}
	return s.internalError(c, "booking request failed", err)
}

func (s *Server) internalError(c echo.Context, msg string, err error) error {
	s.log.Error(msg, slog.Any("err", err))
	return c.JSON(http.StatusInternalServerError, detail("internal error"))
}

func detail(msg string) echo.Map {
	return echo.Map{"detail": msg}
}
