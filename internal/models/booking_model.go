package models

import "time"

// Booking records a rental of one car by one user.
// CarName and ProviderEmail are snapshots of the car at booking time; they
// are intentionally not kept in sync with later edits to the car record.
type Booking struct {
	ID            string    `json:"id" firestore:"-"` // Document ID, auto-generated
	CarID         string    `json:"carId" firestore:"carId"`
	CarName       string    `json:"carName" firestore:"carName"`
	ProviderEmail string    `json:"providerEmail" firestore:"providerEmail"` // Car owner at booking time
	UserEmail     string    `json:"userEmail" firestore:"userEmail"`         // Booking owner
	UserName      string    `json:"userName,omitempty" firestore:"userName,omitempty"`
	StartDate     string    `json:"startDate" firestore:"startDate"` // YYYY-MM-DD
	EndDate       string    `json:"endDate" firestore:"endDate"`     // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}
