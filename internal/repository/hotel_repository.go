package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/event-hotels-api/internal/models"
	"gorm.io/gorm"
)

// HotelRepository reads the rows the hotel listing depends on. It applies
// no business rules; an absent row is reported as a nil result.
type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) FindEnrollmentByUser(ctx context.Context, userID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment by user: %w", err)
	}
	return &enrollment, nil
}

// FindTicketByEnrollment returns the enrollment's ticket with its type
// preloaded. Should an enrollment carry more than one, the oldest wins.
func (r *HotelRepository) FindTicketByEnrollment(ctx context.Context, enrollmentID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enrollmentID).
		Order("id").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket by enrollment: %w", err)
	}
	return &ticket, nil
}

func (r *HotelRepository) FindHotels(ctx context.Context) ([]models.Hotel, error) {
	hotels := []models.Hotel{}
	if err := r.db.WithContext(ctx).Order("id").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("find hotels: %w", err)
	}
	return hotels, nil
}

func (r *HotelRepository) FindHotel(ctx context.Context, hotelID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}
	return &hotel, nil
}

func (r *HotelRepository) FindHotelRooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("find hotel rooms: %w", err)
	}
	return rooms, nil
}
