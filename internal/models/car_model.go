package models

import "time"

// Car availability states. A car's status is the single piece of state
// shared between the cars and bookings collections: it must say "Booked"
// exactly while an active booking references the car.
const (
	CarStatusAvailable = "Available"
	CarStatusBooked    = "Booked"
)

// Car represents a rental listing owned by the user identified by OwnerEmail.
type Car struct {
	ID              string    `json:"id" firestore:"-"` // Document ID, auto-generated
	CarName         string    `json:"carName" firestore:"carName"`
	Description     string    `json:"description" firestore:"description"`
	Category        string    `json:"category" firestore:"category"`
	RentPricePerDay float64   `json:"rentPricePerDay" firestore:"rentPricePerDay"`
	Location        string    `json:"location" firestore:"location"`
	ImageURL        string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Status          string    `json:"status" firestore:"status"` // CarStatusAvailable or CarStatusBooked
	OwnerEmail      string    `json:"ownerEmail" firestore:"ownerEmail"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}
