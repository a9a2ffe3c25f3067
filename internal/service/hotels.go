package service

import (
	"context"

	"github.com/gdg-garage/event-hotels-api/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HotelRepository is the storage the hotel listing reads from. Absent
// enrollments, tickets and hotels are reported as nil with a nil error.
type HotelRepository interface {
	FindEnrollmentByUser(ctx context.Context, userID uint) (*models.Enrollment, error)
	FindTicketByEnrollment(ctx context.Context, enrollmentID uint) (*models.Ticket, error)
	FindHotels(ctx context.Context) ([]models.Hotel, error)
	FindHotel(ctx context.Context, hotelID uint) (*models.Hotel, error)
	FindHotelRooms(ctx context.Context, hotelID uint) ([]models.Room, error)
}

type HotelService struct {
	repo   HotelRepository
	tracer trace.Tracer
}

type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func NewHotelService(repo HotelRepository, opts ...Option) *HotelService {
	o := &options{tracerProvider: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(o)
	}
	return &HotelService{
		repo:   repo,
		tracer: o.tracerProvider.Tracer("github.com/gdg-garage/event-hotels-api/internal/service"),
	}
}

// ListHotels returns every hotel, in storage order, to a user whose ticket
// grants lodging.
func (s *HotelService) ListHotels(ctx context.Context, userID uint) (hotels []models.Hotel, err error) {
	ctx, span := s.tracer.Start(ctx, "HotelService.ListHotels", trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
	))
	defer func() { endSpan(span, err) }()

	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}

	hotels, err = s.repo.FindHotels(ctx)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, ErrNoHotels
	}

	span.SetAttributes(attribute.Int("hotels.count", len(hotels)))
	return hotels, nil
}

// ListHotelRooms returns the rooms of one hotel to a user whose ticket
// grants lodging. The hotel itself is not part of the eligibility check.
func (s *HotelService) ListHotelRooms(ctx context.Context, hotelID, userID uint) (rooms []models.Room, err error) {
	ctx, span := s.tracer.Start(ctx, "HotelService.ListHotelRooms", trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("hotel.id", int64(hotelID)),
	))
	defer func() { endSpan(span, err) }()

	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}

	hotel, err := s.repo.FindHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, ErrHotelNotFound
	}

	rooms, err = s.repo.FindHotelRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}

	span.SetAttributes(attribute.Int("rooms.count", len(rooms)))
	return rooms, nil
}

func (s *HotelService) checkEligibility(ctx context.Context, userID uint) error {
	enrollment, err := s.repo.FindEnrollmentByUser(ctx, userID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return ErrEnrollmentNotFound
	}

	ticket, err := s.repo.FindTicketByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}

	return checkTicket(ticket)
}

// checkTicket applies the lodging rule, reporting the first unmet condition.
func checkTicket(ticket *models.Ticket) error {
	switch {
	case ticket.Status == models.TicketStatusReserved:
		return ErrTicketNotPaid
	case ticket.TicketType.IsRemote:
		return ErrRemoteTicket
	case !ticket.TicketType.IncludesHotel:
		return ErrHotelNotIncluded
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
