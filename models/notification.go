package models

import "time"

// AppNotification is an in-app notification. Only Read ever changes after creation.
type AppNotification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// NotificationContent is the title/body pair produced for a status change.
type NotificationContent struct {
	Title string `json:"notificationTitle"`
	Body  string `json:"notificationBody"`
}

// NotificationInput is the context handed to a text generator.
type NotificationInput struct {
	RequestID      string         `json:"requestId"`
	Status         DeliveryStatus `json:"status"`
	RequesterName  string         `json:"requesterName"`
	PorterName     string         `json:"porterName,omitempty"`
	PackageDetails string         `json:"packageDetails,omitempty"`
	ETA            string         `json:"eta,omitempty"`
	Location       string         `json:"location"`
}

// NotificationFeed is the notification list returned to clients.
type NotificationFeed struct {
	Notifications []AppNotification `json:"notifications"`
	UnreadCount   int               `json:"unreadCount"`
}
