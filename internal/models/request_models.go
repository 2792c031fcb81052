package models

// CreateCarRequest represents the request body for listing a new car.
// CarName, Description and RentPricePerDay are mandatory; the remaining
// fields receive fixed defaults when omitted.
type CreateCarRequest struct {
	CarName         string  `json:"carName" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	RentPricePerDay float64 `json:"rentPricePerDay" binding:"required"`
	Category        string  `json:"category,omitempty"`
	Location        string  `json:"location,omitempty"`
	ImageURL        string  `json:"imageUrl,omitempty"`
}

// UpdateCarRequest represents the request body for updating an existing car.
// Pointers distinguish "clear this field" from "field not provided".
// OwnerEmail and Status are deliberately absent: ownership never changes
// hands through an update, and availability changes only through the
// booking transition.
type UpdateCarRequest struct {
	CarName         *string  `json:"carName,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
	RentPricePerDay *float64 `json:"rentPricePerDay,omitempty"`
	Location        *string  `json:"location,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
}

// CreateBookingRequest represents the request body for booking a car.
type CreateBookingRequest struct {
	CarID     string `json:"carId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// UpdateProfileRequest represents the request body for the profile upsert.
type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Photo   *string `json:"photo,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
