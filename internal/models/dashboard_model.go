package models

// DashboardStats aggregates headline counts over the three collections.
type DashboardStats struct {
	TotalCars     int `json:"totalCars"`
	AvailableCars int `json:"availableCars"`
	BookedCars    int `json:"bookedCars"`
	TotalBookings int `json:"totalBookings"`
	TotalUsers    int `json:"totalUsers"`
}

// CarAvailability is the two-bucket availability breakdown.
type CarAvailability struct {
	Available int `json:"available"`
	Booked    int `json:"booked"`
}

// BookingsByDay is one point of the bookings-over-time series.
type BookingsByDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}
