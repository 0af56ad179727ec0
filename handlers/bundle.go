// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Mock identities used when a request carries no X-User-Name header.
	DefaultCustomerName string
	DefaultPorterName   string

	// Request lifecycle endpoints
	CreateRequest  gin.HandlerFunc
	GetRequest     gin.HandlerFunc
	AcceptRequest  gin.HandlerFunc
	UpdateStatus   gin.HandlerFunc
	DeclineRequest gin.HandlerFunc
	CancelRequest  gin.HandlerFunc

	// Dashboard views
	ActiveForCustomer  gin.HandlerFunc
	HistoryForCustomer gin.HandlerFunc
	ActiveForPorter    gin.HandlerFunc
	AvailableForPorter gin.HandlerFunc
	GetLocations       gin.HandlerFunc
	GetProfile         gin.HandlerFunc

	// Notification endpoints
	GetNotifications gin.HandlerFunc
	MarkAllRead      gin.HandlerFunc

	// Live updates
	StreamEvents gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the individual handlers.
func NewHandlerBundle(
	deliveryHandler *DeliveryHandler,
	notificationHandler *NotificationHandler,
	eventsHandler *EventsHandler,
	defaultCustomer, defaultPorter string,
) *HandlerBundle {
	return &HandlerBundle{
		DefaultCustomerName: defaultCustomer,
		DefaultPorterName:   defaultPorter,

		CreateRequest:  deliveryHandler.CreateRequest,
		GetRequest:     deliveryHandler.GetRequest,
		AcceptRequest:  deliveryHandler.AcceptRequest,
		UpdateStatus:   deliveryHandler.UpdateStatus,
		DeclineRequest: deliveryHandler.DeclineRequest,
		CancelRequest:  deliveryHandler.CancelRequest,

		ActiveForCustomer:  deliveryHandler.ActiveForCustomer,
		HistoryForCustomer: deliveryHandler.HistoryForCustomer,
		ActiveForPorter:    deliveryHandler.ActiveForPorter,
		AvailableForPorter: deliveryHandler.AvailableForPorter,
		GetLocations:       deliveryHandler.GetLocations,
		GetProfile:         deliveryHandler.GetProfile,

		GetNotifications: notificationHandler.GetNotifications,
		MarkAllRead:      notificationHandler.MarkAllRead,

		StreamEvents: eventsHandler.StreamEvents,
	}
}
