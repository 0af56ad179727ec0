package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := map[DeliveryStatus]map[DeliveryStatus]bool{
		StatusPending:   {StatusAccepted: true, StatusCancelled: true},
		StatusAccepted:  {StatusInTransit: true, StatusDelivered: true, StatusCancelled: true},
		StatusInTransit: {StatusInTransit: true, StatusDelivered: true, StatusCancelled: true},
	}
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			if got, want := from.CanTransition(to), allowed[from][to]; got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, to := range AllStatuses() {
			if s.CanTransition(to) {
				t.Errorf("terminal %s must not transition to %s", s, to)
			}
		}
	}
}

func TestIncludesPackageDetails(t *testing.T) {
	want := map[DeliveryStatus]bool{
		StatusPending:   false,
		StatusAccepted:  true,
		StatusInTransit: true,
		StatusDelivered: false,
		StatusCancelled: true,
	}
	for s, w := range want {
		if got := s.IncludesPackageDetails(); got != w {
			t.Errorf("%s: got %v, want %v", s, got, w)
		}
	}
}

func TestIsValid(t *testing.T) {
	if DeliveryStatus("lost").IsValid() {
		t.Error("unexpected valid status")
	}
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
}
