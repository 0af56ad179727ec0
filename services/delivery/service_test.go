package delivery

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"campusporter/config"
	"campusporter/models"
	"campusporter/services/events"
)

type notifyCall struct {
	req    models.DeliveryRequest
	status models.DeliveryStatus
	eta    string
}

type recordingNotifier struct {
	calls []notifyCall
}

func (n *recordingNotifier) Notify(_ context.Context, req models.DeliveryRequest, status models.DeliveryStatus, eta string) models.AppNotification {
	n.calls = append(n.calls, notifyCall{req: req, status: status, eta: eta})
	return models.AppNotification{ID: "n", Title: "t", Body: "b"}
}

// fixedClock returns the same instant every call so strict updatedAt ordering is exercised.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func newTestService(t *testing.T, seed ...models.DeliveryRequest) (*DefaultDeliveryService, *recordingNotifier, *fixedClock) {
	t.Helper()
	notifier := &recordingNotifier{}
	svc := NewDefaultDeliveryService(NewMemoryStore(seed...), notifier, events.NewBroker(), config.DefaultLocations, nil)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	return svc, notifier, clock
}

func mustCreate(t *testing.T, svc *DefaultDeliveryService) *models.DeliveryRequest {
	t.Helper()
	req, err := svc.CreateRequest(context.Background(), "Alex Doe", models.NewRequestInput{
		PackageDetails: "Small backpack",
		Location:       "Hostel A",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return req
}

// withStatus stores a copy of a request forced into status.
func withStatus(id string, status models.DeliveryStatus) models.DeliveryRequest {
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	r := models.DeliveryRequest{
		ID:             id,
		RequesterName:  "Alex Doe",
		PackageDetails: "Books",
		Location:       "Hostel B",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status != models.StatusPending {
		p, e := "Porter Pete", "10"
		r.PorterName, r.ETA = &p, &e
	}
	return r
}

func TestCreateRequest(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	instructions := "  Ring twice  "

	req, err := svc.CreateRequest(context.Background(), "Alex Doe", models.NewRequestInput{
		PackageDetails:       "  Small backpack ",
		Location:             "Hostel A",
		DeliveryInstructions: &instructions,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != models.StatusPending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if req.PorterName != nil || req.ETA != nil {
		t.Errorf("expected porter and eta unset, got %v %v", req.PorterName, req.ETA)
	}
	if !req.CreatedAt.Equal(req.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v vs %v", req.CreatedAt, req.UpdatedAt)
	}
	if req.PackageDetails != "Small backpack" {
		t.Errorf("expected trimmed package details, got %q", req.PackageDetails)
	}
	if req.DeliveryInstructions == nil || *req.DeliveryInstructions != "Ring twice" {
		t.Errorf("unexpected instructions %v", req.DeliveryInstructions)
	}
	if req.ID == "" {
		t.Error("expected an id")
	}

	if len(notifier.calls) != 1 || notifier.calls[0].status != models.StatusPending {
		t.Fatalf("expected one pending notification, got %+v", notifier.calls)
	}

	stored, err := svc.GetRequest(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !reflect.DeepEqual(*stored, *req) {
		t.Errorf("stored request differs: %+v vs %+v", stored, req)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	long := string(make([]byte, 151))

	tests := []struct {
		name  string
		in    models.NewRequestInput
		field string
	}{
		{"empty package", models.NewRequestInput{Location: "Hostel A"}, "packageDetails"},
		{"short package", models.NewRequestInput{PackageDetails: "ab", Location: "Hostel A"}, "packageDetails"},
		{"missing location", models.NewRequestInput{PackageDetails: "Books"}, "location"},
		{"unknown location", models.NewRequestInput{PackageDetails: "Books", Location: "Moon Base"}, "location"},
		{"long instructions", models.NewRequestInput{PackageDetails: "Books", Location: "Hostel A", DeliveryInstructions: &long}, "deliveryInstructions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRequest(context.Background(), "Alex Doe", tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	all, _ := svc.store.List(context.Background())
	if len(all) != 0 {
		t.Errorf("expected nothing stored, got %d", len(all))
	}
	if len(notifier.calls) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.calls))
	}
}

func TestAcceptRequest(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	created := mustCreate(t, svc)

	accepted, err := svc.AcceptRequest(context.Background(), created.ID, "Porter Pete", models.AcceptRequestInput{ETA: "15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != models.StatusAccepted {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}
	if accepted.PorterName == nil || *accepted.PorterName != "Porter Pete" {
		t.Errorf("expected porter set, got %v", accepted.PorterName)
	}
	if accepted.ETA == nil || *accepted.ETA != "15" {
		t.Errorf("expected eta 15, got %v", accepted.ETA)
	}
	if !accepted.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("expected updatedAt to advance: %v -> %v", created.UpdatedAt, accepted.UpdatedAt)
	}

	last := notifier.calls[len(notifier.calls)-1]
	if last.status != models.StatusAccepted || last.eta != "15" {
		t.Errorf("unexpected notification call %+v", last)
	}
	if last.req.PorterName == nil || *last.req.PorterName != "Porter Pete" {
		t.Error("expected notification to see the post-transition snapshot")
	}
}

func TestAcceptRequiresETA(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := mustCreate(t, svc)

	for _, eta := range []string{"", "  ", "soon", "0", "-5", "1441", "9000000000000000000"} {
		_, err := svc.AcceptRequest(context.Background(), created.ID, "Porter Pete", models.AcceptRequestInput{ETA: eta})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "eta" {
			t.Errorf("eta %q: expected eta validation error, got %v", eta, err)
		}
	}
	stored, _ := svc.GetRequest(context.Background(), created.ID)
	if stored.Status != models.StatusPending || stored.PorterName != nil {
		t.Errorf("request modified by rejected accepts: %+v", stored)
	}
}

func TestAcceptAllowsDayLongETA(t *testing.T) {
	svc, _, _ := newTestService(t)
	sched := &recordingScheduler{}
	svc.SetReminderScheduler(sched)
	created := mustCreate(t, svc)

	accepted, err := svc.AcceptRequest(context.Background(), created.ID, "Porter Pete", models.AcceptRequestInput{ETA: "1440"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := accepted.UpdatedAt.Add(24 * time.Hour); len(sched.fireAts) != 1 || !sched.fireAts[0].Equal(want) {
		t.Errorf("expected reminder at %v, got %v", want, sched.fireAts)
	}
}

func TestAcceptOnlyFromPending(t *testing.T) {
	for _, status := range []models.DeliveryStatus{models.StatusAccepted, models.StatusInTransit, models.StatusDelivered, models.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			seed := withStatus("req-x", status)
			svc, notifier, _ := newTestService(t, seed)

			_, err := svc.AcceptRequest(context.Background(), "req-x", "Other Porter", models.AcceptRequestInput{ETA: "5"})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
			stored, _ := svc.GetRequest(context.Background(), "req-x")
			if !reflect.DeepEqual(*stored, seed) {
				t.Errorf("request modified: %+v", stored)
			}
			if len(notifier.calls) != 0 {
				t.Error("rejected transition must not notify")
			}
		})
	}
}

func TestUpdateStatusTransitionGrid(t *testing.T) {
	for _, from := range models.AllStatuses() {
		for _, to := range models.AllStatuses() {
			allowed := from.IsActive() && to.IsStatusUpdateTarget()
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				svc, _, _ := newTestService(t, withStatus("req-g", from))

				updated, err := svc.UpdateStatus(context.Background(), "req-g", "Porter Pete", models.UpdateStatusInput{Status: to})
				if allowed {
					if err != nil {
						t.Fatalf("expected success, got %v", err)
					}
					if updated.Status != to {
						t.Errorf("expected %s, got %s", to, updated.Status)
					}
					return
				}
				if err == nil {
					t.Fatal("expected rejection")
				}
				stored, _ := svc.GetRequest(context.Background(), "req-g")
				if stored.Status != from {
					t.Errorf("status changed on rejection: %s", stored.Status)
				}
			})
		}
	}
}

func TestUpdateStatusOnlyByAssignedPorter(t *testing.T) {
	svc, notifier, _ := newTestService(t, withStatus("req-a", models.StatusAccepted))

	_, err := svc.UpdateStatus(context.Background(), "req-a", "Other Porter", models.UpdateStatusInput{Status: models.StatusDelivered})
	var terr *TransitionError
	if !errors.As(err, &terr) || !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected transition error, got %v", err)
	}
	if terr.Reason == "" {
		t.Error("expected the error to name the ownership problem")
	}
	stored, _ := svc.GetRequest(context.Background(), "req-a")
	if stored.Status != models.StatusAccepted {
		t.Errorf("status changed by another porter: %s", stored.Status)
	}
	if len(notifier.calls) != 0 {
		t.Error("rejected update must not notify")
	}
}

func TestUpdateStatusRejectsBadTarget(t *testing.T) {
	svc, _, _ := newTestService(t, withStatus("req-a", models.StatusAccepted))
	_, err := svc.UpdateStatus(context.Background(), "req-a", "Porter Pete", models.UpdateStatusInput{Status: "lost"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "status" {
		t.Errorf("expected status validation error, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AcceptRequest(ctx, "nope", "Porter Pete", models.AcceptRequestInput{ETA: "5"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("accept: expected not found, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "nope", "Porter Pete", models.UpdateStatusInput{Status: models.StatusDelivered}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected not found, got %v", err)
	}
	if _, err := svc.DeclineRequest(ctx, "nope", "Porter Pete"); !errors.Is(err, ErrNotFound) {
		t.Errorf("decline: expected not found, got %v", err)
	}
	if _, err := svc.GetRequest(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected not found, got %v", err)
	}
}

func TestDeclineLeavesRequestPending(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	created := mustCreate(t, svc)
	calls := len(notifier.calls)

	got, err := svc.DeclineRequest(context.Background(), created.ID, "Porter Pete")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(*got, *created) {
		t.Errorf("decline changed the request: %+v", got)
	}
	available, _ := svc.AvailableForPorter(context.Background())
	if len(available) != 1 || available[0].ID != created.ID {
		t.Errorf("expected request to stay available, got %+v", available)
	}
	if len(notifier.calls) != calls {
		t.Error("decline must not notify")
	}

	svc2, _, _ := newTestService(t, withStatus("req-d", models.StatusAccepted))
	if _, err := svc2.DeclineRequest(context.Background(), "req-d", "Porter Pete"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected decline of accepted request to fail, got %v", err)
	}
}

func TestCancelRequest(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := mustCreate(t, svc)

	cancelled, err := svc.CancelRequest(context.Background(), created.ID, "Alex Doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
	if _, err := svc.CancelRequest(context.Background(), created.ID, "Alex Doe"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected second cancel to fail, got %v", err)
	}
}

func TestCancelOnlyByRequester(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := mustCreate(t, svc)

	if _, err := svc.CancelRequest(context.Background(), created.ID, "Priya Sharma"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected cancel by another customer to fail, got %v", err)
	}
	stored, _ := svc.GetRequest(context.Background(), created.ID)
	if stored.Status != models.StatusPending {
		t.Errorf("expected request to stay pending, got %s", stored.Status)
	}
}

func TestNewMemoryStorePanicsOnDuplicateSeed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected duplicate seed ids to panic")
		}
	}()
	NewMemoryStore(withStatus("req-dup", models.StatusPending), withStatus("req-dup", models.StatusDelivered))
}

func TestOptimisticConcurrency(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := mustCreate(t, svc)
	stale := created.UpdatedAt.Add(-time.Minute)

	_, err := svc.AcceptRequest(context.Background(), created.ID, "Porter Pete", models.AcceptRequestInput{ETA: "5", ExpectedUpdatedAt: &stale})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	current := created.UpdatedAt
	accepted, err := svc.AcceptRequest(context.Background(), created.ID, "Porter Pete", models.AcceptRequestInput{ETA: "5", ExpectedUpdatedAt: &current})
	if err != nil {
		t.Fatalf("expected accept with current version to succeed, got %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), created.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusCancelled, ExpectedUpdatedAt: &current})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected conflict on stale cancel, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), created.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusInTransit, ExpectedUpdatedAt: &accepted.UpdatedAt}); err != nil {
		t.Errorf("expected update with current version to succeed, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	seed := SeedRequests(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), "Alex Doe", "Porter Pete")
	svc, _, _ := newTestService(t, seed...)
	ctx := context.Background()

	ids := func(reqs []models.DeliveryRequest) []string {
		out := []string{}
		for _, r := range reqs {
			out = append(out, r.ID)
		}
		return out
	}

	active, _ := svc.ActiveForCustomer(ctx, "Alex Doe")
	if got, want := ids(active), []string{"req-00103"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active for customer: got %v, want %v", got, want)
	}
	history, _ := svc.HistoryForCustomer(ctx, "Alex Doe")
	if got, want := ids(history), []string{"req-00101", "req-00100"}; !reflect.DeepEqual(got, want) {
		t.Errorf("history for customer: got %v, want %v", got, want)
	}
	porterActive, _ := svc.ActiveForPorter(ctx, "Porter Pete")
	if got, want := ids(porterActive), []string{"req-00103", "req-00102"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active for porter: got %v, want %v", got, want)
	}
	available, _ := svc.AvailableForPorter(ctx)
	if got, want := ids(available), []string{"req-00105", "req-00104"}; !reflect.DeepEqual(got, want) {
		t.Errorf("available: got %v, want %v", got, want)
	}

	again, _ := svc.AvailableForPorter(ctx)
	if !reflect.DeepEqual(available, again) {
		t.Error("expected repeated queries to be identical")
	}
	none, _ := svc.ActiveForPorter(ctx, "Someone Else")
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestEndToEndLifecycle(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	req, err := svc.CreateRequest(ctx, "Alex Doe", models.NewRequestInput{PackageDetails: "Small backpack", Location: "Hostel A"})
	if err != nil || req.Status != models.StatusPending {
		t.Fatalf("create: %v %+v", err, req)
	}
	req, err = svc.AcceptRequest(ctx, req.ID, "Porter Pete", models.AcceptRequestInput{ETA: "10"})
	if err != nil || req.Status != models.StatusAccepted || *req.ETA != "10" || req.PorterName == nil {
		t.Fatalf("accept: %v %+v", err, req)
	}
	req, err = svc.UpdateStatus(ctx, req.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusInTransit})
	if err != nil || req.Status != models.StatusInTransit {
		t.Fatalf("in transit: %v %+v", err, req)
	}
	req, err = svc.UpdateStatus(ctx, req.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusDelivered})
	if err != nil || req.Status != models.StatusDelivered {
		t.Fatalf("delivered: %v %+v", err, req)
	}
	if _, err := svc.UpdateStatus(ctx, req.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusCancelled}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected terminal request to reject updates, got %v", err)
	}
	if *req.PorterName != "Porter Pete" || *req.ETA != "10" {
		t.Error("porter and eta must survive later transitions")
	}
	if len(notifier.calls) != 4 {
		t.Errorf("expected one notification per transition (4), got %d", len(notifier.calls))
	}
}

func TestProgress(t *testing.T) {
	eta := func(s string) *string { return &s }
	tests := []struct {
		req  models.DeliveryRequest
		want float64
	}{
		{models.DeliveryRequest{Status: models.StatusPending}, 10},
		{models.DeliveryRequest{Status: models.StatusAccepted, ETA: eta("15")}, 33},
		{models.DeliveryRequest{Status: models.StatusInTransit, ETA: eta("0")}, 76},
		{models.DeliveryRequest{Status: models.StatusInTransit, ETA: eta("30")}, 56},
		{models.DeliveryRequest{Status: models.StatusDelivered, ETA: eta("5")}, 100},
		{models.DeliveryRequest{Status: models.StatusCancelled, ETA: eta("5")}, 0},
		{models.DeliveryRequest{Status: models.StatusAccepted, ETA: eta("600")}, 0},
		{models.DeliveryRequest{Status: models.StatusInTransit, ETA: eta("1440")}, 0},
	}
	for _, tt := range tests {
		got := Progress(tt.req)
		if got != tt.want {
			t.Errorf("Progress(%s) = %v, want %v", tt.req.Status, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Progress(%s) = %v, outside 0..100", tt.req.Status, got)
		}
	}
}

type recordingScheduler struct {
	ids     []string
	fireAts []time.Time
	err     error
}

func (s *recordingScheduler) ScheduleArrivalReminder(_ context.Context, requestID, _ string, fireAt time.Time) error {
	s.ids = append(s.ids, requestID)
	s.fireAts = append(s.fireAts, fireAt)
	return s.err
}

func TestAcceptSchedulesArrivalReminder(t *testing.T) {
	svc, _, _ := newTestService(t)
	sched := &recordingScheduler{}
	svc.SetReminderScheduler(sched)

	req := mustCreate(t, svc)
	accepted, err := svc.AcceptRequest(context.Background(), req.ID, "Porter Pete", models.AcceptRequestInput{ETA: "15"})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if len(sched.ids) != 1 || sched.ids[0] != req.ID {
		t.Fatalf("expected one reminder for %s, got %v", req.ID, sched.ids)
	}
	if want := accepted.UpdatedAt.Add(15 * time.Minute); !sched.fireAts[0].Equal(want) {
		t.Errorf("expected fireAt %v, got %v", want, sched.fireAts[0])
	}

	if _, err := svc.UpdateStatus(context.Background(), req.ID, "Porter Pete", models.UpdateStatusInput{Status: models.StatusInTransit}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(sched.ids) != 1 {
		t.Errorf("status updates must not schedule reminders, got %d", len(sched.ids))
	}
}

func TestAcceptSucceedsWhenSchedulingFails(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	svc.SetReminderScheduler(&recordingScheduler{err: errors.New("queue down")})

	req := mustCreate(t, svc)
	accepted, err := svc.AcceptRequest(context.Background(), req.ID, "Porter Pete", models.AcceptRequestInput{ETA: "5"})
	if err != nil {
		t.Fatalf("expected accept to succeed, got %v", err)
	}
	if accepted.Status != models.StatusAccepted {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}
	if len(notifier.calls) != 2 {
		t.Errorf("expected create and accept notifications, got %d", len(notifier.calls))
	}
}
