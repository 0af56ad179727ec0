package delivery

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"campusporter/models"
)

const (
	minPackageDetailsLen = 3
	maxPackageDetailsLen = 100
	maxInstructionsLen   = 150
	maxETAMinutes        = 24 * 60
)

// normalizeNewRequest trims the form and checks it against the permitted locations.
func (s *DefaultDeliveryService) normalizeNewRequest(requesterName string, in models.NewRequestInput) (models.NewRequestInput, error) {
	if strings.TrimSpace(requesterName) == "" {
		return in, newValidationError("requesterName", "requester name is required")
	}

	in.PackageDetails = strings.TrimSpace(in.PackageDetails)
	switch n := utf8.RuneCountInString(in.PackageDetails); {
	case n < minPackageDetailsLen:
		return in, newValidationError("packageDetails", "Please describe the package.")
	case n > maxPackageDetailsLen:
		return in, newValidationError("packageDetails", "Package details must be at most 100 characters.")
	}

	in.Location = strings.TrimSpace(in.Location)
	if in.Location == "" {
		return in, newValidationError("location", "Please select a location.")
	}
	if !s.isPermittedLocation(in.Location) {
		return in, newValidationError("location", "Unknown delivery location.")
	}

	if in.DeliveryInstructions != nil {
		trimmed := strings.TrimSpace(*in.DeliveryInstructions)
		if utf8.RuneCountInString(trimmed) > maxInstructionsLen {
			return in, newValidationError("deliveryInstructions", "Delivery instructions must be at most 150 characters.")
		}
		if trimmed == "" {
			in.DeliveryInstructions = nil
		} else {
			in.DeliveryInstructions = &trimmed
		}
	}
	return in, nil
}

// normalizeETA accepts a whole number of minutes between 1 and a day.
func normalizeETA(eta string) (string, error) {
	eta = strings.TrimSpace(eta)
	if eta == "" {
		return "", newValidationError("eta", "Please provide an ETA.")
	}
	minutes, err := strconv.Atoi(eta)
	if err != nil || minutes <= 0 {
		return "", newValidationError("eta", "ETA must be a positive number of minutes.")
	}
	if minutes > maxETAMinutes {
		return "", newValidationError("eta", "ETA must be at most 1440 minutes.")
	}
	return strconv.Itoa(minutes), nil
}

func (s *DefaultDeliveryService) isPermittedLocation(location string) bool {
	for _, l := range s.locations {
		if l == location {
			return true
		}
	}
	return false
}
