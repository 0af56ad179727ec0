package delivery

import (
	"time"

	"campusporter/models"
)

// SeedRequests is the fixed data the store starts from, newest first, for the given
// customer and porter identities.
func SeedRequests(now time.Time, customer, porter string) []models.DeliveryRequest {
	str := func(s string) *string { return &s }
	at := func(minutesAgo int) time.Time { return now.Add(-time.Duration(minutesAgo) * time.Minute) }

	return []models.DeliveryRequest{
		{
			ID:             "req-00105",
			RequesterName:  "Priya Sharma",
			PackageDetails: "Box of books from the library",
			Location:       "Girls Hostel 1",
			Status:         models.StatusPending,
			CreatedAt:      at(5),
			UpdatedAt:      at(5),
		},
		{
			ID:                   "req-00104",
			RequesterName:        customer,
			PackageDetails:       "Amazon parcel, medium size",
			Location:             "Hostel A",
			DeliveryInstructions: str("Leave with my roommate if I'm not there."),
			Status:               models.StatusPending,
			CreatedAt:            at(12),
			UpdatedAt:            at(12),
		},
		{
			ID:             "req-00103",
			RequesterName:  customer,
			PackageDetails: "Groceries from the campus store",
			Location:       "Hostel A",
			Status:         models.StatusInTransit,
			PorterName:     str(porter),
			ETA:            str("10"),
			CreatedAt:      at(40),
			UpdatedAt:      at(20),
		},
		{
			ID:             "req-00102",
			RequesterName:  "Rahul Verma",
			PackageDetails: "Laundry bag",
			Location:       "Hostel C",
			Status:         models.StatusAccepted,
			PorterName:     str(porter),
			ETA:            str("25"),
			CreatedAt:      at(60),
			UpdatedAt:      at(45),
		},
		{
			ID:             "req-00101",
			RequesterName:  customer,
			PackageDetails: "Printed assignment folder",
			Location:       "Hostel B",
			Status:         models.StatusDelivered,
			PorterName:     str(porter),
			ETA:            str("8"),
			CreatedAt:      at(24 * 60),
			UpdatedAt:      at(23 * 60),
		},
		{
			ID:             "req-00100",
			RequesterName:  customer,
			PackageDetails: "Small backpack",
			Location:       "Hostel D",
			Status:         models.StatusCancelled,
			CreatedAt:      at(2 * 24 * 60),
			UpdatedAt:      at(2*24*60 - 30),
		},
	}
}

// SeedUser is the mock signed-in campus user for the given role.
func SeedUser(role models.UserRole, name string) models.User {
	return models.User{
		Name:  name,
		Email: "student@student.edu",
		Phone: "9876543210",
		Role:  role,
	}
}
