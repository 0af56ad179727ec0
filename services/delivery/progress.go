package delivery

import (
	"math"
	"strconv"

	"campusporter/models"
)

var baseProgress = map[models.DeliveryStatus]float64{
	models.StatusPending:   10,
	models.StatusAccepted:  33,
	models.StatusInTransit: 66,
	models.StatusDelivered: 100,
	models.StatusCancelled: 0,
}

// Progress is the request card's progress bar value, between 0 and 100. Active requests
// with an ETA get a bonus of up to 10 points that shrinks as the ETA grows past 15 minutes.
// Long ETAs can push the value below the status base but never below zero.
func Progress(req models.DeliveryRequest) float64 {
	if req.Status.IsTerminal() {
		return baseProgress[req.Status]
	}
	p := baseProgress[req.Status]
	if req.ETA != nil {
		if minutes, err := strconv.Atoi(*req.ETA); err == nil {
			p += math.Min(10, float64(15-minutes)/15*10)
		}
	}
	return math.Max(0, math.Min(100, p))
}

// ToResponse decorates a request for the API.
func ToResponse(req models.DeliveryRequest) models.DeliveryRequestResponse {
	return models.DeliveryRequestResponse{
		DeliveryRequest: req,
		StatusLabel:     req.Status.Label(),
		Progress:        Progress(req),
	}
}

// ToResponses decorates a slice of requests.
func ToResponses(reqs []models.DeliveryRequest) []models.DeliveryRequestResponse {
	out := make([]models.DeliveryRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToResponse(r))
	}
	return out
}
