package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
)

type stubRepo struct {
	items     []*calendar.CalendarItem
	listErr   error
	createErr error
	created   []*calendar.CalendarItem
}

func (r *stubRepo) ListItems(ctx context.Context, within interval.Interval) ([]*calendar.CalendarItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func (r *stubRepo) CreateItem(ctx context.Context, item *calendar.CalendarItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, item)
	return nil
}

func testInterval(t *testing.T) interval.Interval {
	t.Helper()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	iv, err := interval.New(start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	return iv
}

func TestLoadItems(t *testing.T) {
	within := testInterval(t)
	repo := &stubRepo{items: []*calendar.CalendarItem{{Title: "Booked"}}}

	msg := LoadItems(repo, within)()
	loaded, ok := msg.(ItemsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want ItemsLoadedMsg", msg)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Title != "Booked" {
		t.Errorf("items = %v", loaded.Items)
	}
	if !loaded.Within.Start.Equal(within.Start) {
		t.Errorf("within = %v", loaded.Within)
	}
}

func TestLoadItems_Error(t *testing.T) {
	repo := &stubRepo{listErr: errors.New("boom")}

	msg := LoadItems(repo, testInterval(t))()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if errMsg.Err == nil {
		t.Error("expected an error")
	}
}

func TestSaveItem(t *testing.T) {
	repo := &stubRepo{}
	item := &calendar.CalendarItem{Title: "New booking"}

	msg := SaveItem(repo, item)()
	saved, ok := msg.(ItemSavedMsg)
	if !ok {
		t.Fatalf("got %T, want ItemSavedMsg", msg)
	}
	if saved.Item != item || len(repo.created) != 1 {
		t.Error("item must be persisted and echoed back")
	}
}

func TestSaveItem_Error(t *testing.T) {
	repo := &stubRepo{createErr: errors.New("conflict")}

	msg := SaveItem(repo, &calendar.CalendarItem{Title: "X"})()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
}

func TestStatus(t *testing.T) {
	msg := Status("hello")()
	status, ok := msg.(StatusMsgCmd)
	if !ok || status.Msg != "hello" {
		t.Fatalf("got %T %v", msg, msg)
	}
}
