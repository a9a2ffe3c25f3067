package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdg-garage/event-hotels-api/internal/database"
	"github.com/gdg-garage/event-hotels-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// OpenDB returns a migrated in-memory database private to the test.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(database.Models...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func next() uint64 {
	return seq.Add(1)
}

func create(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("failed to create %T: %v", v, err)
	}
}

func CreateUser(t testing.TB, db *gorm.DB) models.User {
	n := next()
	user := models.User{
		DiscordID: fmt.Sprintf("discord-%d", n),
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
	}
	create(t, db, &user)
	return user
}

func CreateEnrollment(t testing.TB, db *gorm.DB, user models.User) models.Enrollment {
	n := next()
	enrollment := models.Enrollment{
		UserID:   user.ID,
		Name:     user.Username,
		CPF:      fmt.Sprintf("%011d", n),
		Phone:    "(21) 98999-9999",
		Birthday: time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
	create(t, db, &enrollment)
	return enrollment
}

func createTicketType(t testing.TB, db *gorm.DB, isRemote, includesHotel bool) models.TicketType {
	ticketType := models.TicketType{
		Name:          fmt.Sprintf("ticket-type-%d", next()),
		Price:         300,
		IsRemote:      isRemote,
		IncludesHotel: includesHotel,
	}
	create(t, db, &ticketType)
	return ticketType
}

// CreateTicketType creates an in-person ticket type that includes a hotel stay.
func CreateTicketType(t testing.TB, db *gorm.DB) models.TicketType {
	return createTicketType(t, db, false, true)
}

func CreateRemoteTicketType(t testing.TB, db *gorm.DB) models.TicketType {
	return createTicketType(t, db, true, false)
}

// CreateRemoteHotelTicketType covers the inconsistent combination of a
// remote ticket that still claims to include a hotel.
func CreateRemoteHotelTicketType(t testing.TB, db *gorm.DB) models.TicketType {
	return createTicketType(t, db, true, true)
}

func CreateNoHotelTicketType(t testing.TB, db *gorm.DB) models.TicketType {
	return createTicketType(t, db, false, false)
}

func CreateTicket(t testing.TB, db *gorm.DB, enrollmentID, ticketTypeID uint, status models.TicketStatus) models.Ticket {
	ticket := models.Ticket{
		EnrollmentID: enrollmentID,
		TicketTypeID: ticketTypeID,
		Status:       status,
	}
	create(t, db, &ticket)
	return ticket
}

func CreateHotel(t testing.TB, db *gorm.DB) models.Hotel {
	n := next()
	hotel := models.Hotel{
		Name:  fmt.Sprintf("Hotel %d", n),
		Image: fmt.Sprintf("https://example.com/hotel-%d.png", n),
	}
	create(t, db, &hotel)
	return hotel
}

func CreateRoom(t testing.TB, db *gorm.DB, hotelID uint) models.Room {
	room := models.Room{
		Name:     fmt.Sprintf("%d", 100+next()),
		Capacity: 2,
		HotelID:  hotelID,
	}
	create(t, db, &room)
	return room
}

// EligibleUser creates a user holding a paid, in-person ticket with hotel.
func EligibleUser(t testing.TB, db *gorm.DB) models.User {
	user := CreateUser(t, db)
	enrollment := CreateEnrollment(t, db, user)
	ticketType := CreateTicketType(t, db)
	CreateTicket(t, db, enrollment.ID, ticketType.ID, models.TicketStatusPaid)
	return user
}
