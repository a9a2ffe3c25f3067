package database

import (
	"errors"

	"github.com/gdg-garage/event-hotels-api/internal/models"
	"gorm.io/gorm"
)

var seedHotels = []struct {
	name  string
	image string
	rooms []models.Room
}{
	{
		name:  "Driven Resort",
		image: "https://images.unsplash.com/photo-1566073771259-6a8506099945",
		rooms: []models.Room{
			{Name: "101", Capacity: 1},
			{Name: "102", Capacity: 2},
			{Name: "103", Capacity: 3},
		},
	},
	{
		name:  "Driven Palace",
		image: "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa",
		rooms: []models.Room{
			{Name: "201", Capacity: 2},
			{Name: "202", Capacity: 2},
		},
	},
	{
		name:  "Driven World",
		image: "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb",
		rooms: []models.Room{
			{Name: "301", Capacity: 1},
			{Name: "302", Capacity: 3},
		},
	},
}

var seedTicketTypes = []models.TicketType{
	{Name: "Online", Price: 100, IsRemote: true},
	{Name: "Presencial sem hotel", Price: 250},
	{Name: "Presencial com hotel", Price: 600, IncludesHotel: true},
}

// Seed inserts demo ticket types and hotels. It is a no-op when any hotel
// already exists.
func Seed(db *gorm.DB) error {
	var existing models.Hotel
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		ticketTypes := make([]models.TicketType, len(seedTicketTypes))
		copy(ticketTypes, seedTicketTypes)
		if err := tx.Create(&ticketTypes).Error; err != nil {
			return err
		}

		for _, h := range seedHotels {
			rooms := make([]models.Room, len(h.rooms))
			copy(rooms, h.rooms)
			hotel := models.Hotel{Name: h.name, Image: h.image, Rooms: rooms}
			if err := tx.Create(&hotel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
