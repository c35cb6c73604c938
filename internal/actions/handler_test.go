package actions

import (
	"errors"
	"testing"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

type fakeTaskStore struct {
	deleted   []string
	deadlines map[string]time.Time
	failWith  error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{deadlines: make(map[string]time.Time)}
}

func (s *fakeTaskStore) DeleteTask(id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeTaskStore) SetTaskDeadline(id string, deadline time.Time) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.deadlines[id] = deadline
	return nil
}

func taskMeta(taskID string) models.NotificationMeta {
	return models.NotificationMeta{
		Type:   constants.KindOverdue,
		TaskID: taskID,
		DeepLink: &models.DeepLink{
			Route:  constants.RouteTaskDetail,
			Params: map[string]string{"id": taskID},
		},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestHandleDelete(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{name: "exact identifier", identifier: constants.ActionDeleteTask},
		{name: "decorated identifier matches by substring", identifier: "com.foyerapp.DELETE_TASK"},
		{name: "bare delete fragment", identifier: "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTaskStore()
			handler := New(store)

			outcome, err := handler.Handle(ResponseEvent{
				ActionIdentifier: tt.identifier,
				Meta:             taskMeta("t1"),
			})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if !outcome.Handled || outcome.Action != "delete" || outcome.TaskID != "t1" {
				t.Errorf("Handle() outcome = %+v, want handled delete of t1", outcome)
			}
			if len(store.deleted) != 1 || store.deleted[0] != "t1" {
				t.Errorf("store.deleted = %v, want exactly [t1]", store.deleted)
			}
			if len(store.deadlines) != 0 {
				t.Errorf("delete must not touch deadlines, got %v", store.deadlines)
			}
		})
	}
}

func TestHandleDelayAnchorsToToday(t *testing.T) {
	// The task may be ten days overdue; the new deadline is computed from
	// today, never from the stale deadline.
	now := time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		identifier string
		want       time.Time
		action     string
	}{
		{
			name:       "delay one day",
			identifier: constants.ActionDelayOneDay,
			want:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			action:     "delay+1",
		},
		{
			name:       "delay three days",
			identifier: constants.ActionDelayThreeDay,
			want:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			action:     "delay+3",
		},
		{
			name:       "decorated delay identifier",
			identifier: "com.foyerapp.DELAY_TASK_1D",
			want:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			action:     "delay+1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTaskStore()
			handler := New(store)
			handler.SetClock(fixedClock(now))

			outcome, err := handler.Handle(ResponseEvent{
				ActionIdentifier: tt.identifier,
				Meta:             taskMeta("t1"),
			})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if outcome.Action != tt.action {
				t.Errorf("Handle() action = %q, want %q", outcome.Action, tt.action)
			}
			got, ok := store.deadlines["t1"]
			if !ok {
				t.Fatal("Handle() did not set a deadline")
			}
			if !got.Equal(tt.want) {
				t.Errorf("new deadline = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandlePlainTap(t *testing.T) {
	for _, identifier := range []string{"", constants.PlainTapIdentifier} {
		store := newFakeTaskStore()
		handler := New(store)

		outcome, err := handler.Handle(ResponseEvent{
			ActionIdentifier: identifier,
			Meta:             taskMeta("t1"),
		})
		if err != nil {
			t.Fatalf("Handle(%q) error = %v", identifier, err)
		}
		if !outcome.Handled || outcome.Action != "open" {
			t.Errorf("Handle(%q) outcome = %+v, want open", identifier, outcome)
		}
		if outcome.DeepLink == nil || outcome.DeepLink.Route != constants.RouteTaskDetail {
			t.Errorf("Handle(%q) deep link = %+v, want taskDetail route", identifier, outcome.DeepLink)
		}
		if len(store.deleted) != 0 || len(store.deadlines) != 0 {
			t.Errorf("plain tap mutated the store: deleted=%v deadlines=%v", store.deleted, store.deadlines)
		}
	}
}

func TestHandleNoOps(t *testing.T) {
	tests := []struct {
		name  string
		event ResponseEvent
	}{
		{
			name:  "missing meta type",
			event: ResponseEvent{ActionIdentifier: constants.ActionDeleteTask},
		},
		{
			name: "unknown action identifier",
			event: ResponseEvent{
				ActionIdentifier: "SNOOZE_FOREVER",
				Meta:             taskMeta("t1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTaskStore()
			handler := New(store)

			outcome, err := handler.Handle(tt.event)
			if err != nil {
				t.Fatalf("Handle() error = %v, want safe no-op", err)
			}
			if outcome.Handled {
				t.Errorf("Handle() outcome = %+v, want unhandled", outcome)
			}
			if len(store.deleted) != 0 || len(store.deadlines) != 0 {
				t.Error("no-op event mutated the store")
			}
		})
	}
}

func TestHandleMissingTaskID(t *testing.T) {
	handler := New(newFakeTaskStore())

	_, err := handler.Handle(ResponseEvent{
		ActionIdentifier: constants.ActionDeleteTask,
		Meta:             models.NotificationMeta{Type: constants.KindOverdue},
	})
	if err == nil {
		t.Error("Handle() error = nil for task action without a task id")
	}
}

func TestHandleSurfacesStoreErrors(t *testing.T) {
	store := newFakeTaskStore()
	store.failWith = errors.New("disk full")
	handler := New(store)

	outcome, err := handler.Handle(ResponseEvent{
		ActionIdentifier: constants.ActionDeleteTask,
		Meta:             taskMeta("t1"),
	})
	if err == nil {
		t.Fatal("Handle() error = nil, want the store error surfaced")
	}
	if !errors.Is(err, store.failWith) {
		t.Errorf("Handle() error = %v, want wrapped %v", err, store.failWith)
	}
	if outcome.Handled {
		t.Error("Handle() reported handled despite store failure")
	}
}
