package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/rl1809/inventory-tracker/internal/adapter/storage"
	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/service"
	"github.com/rl1809/inventory-tracker/internal/core/view"
)

type brokenInventory struct{}

func (brokenInventory) List(ctx context.Context) ([]domain.Item, error) {
	return nil, errors.New("store unavailable")
}

func (brokenInventory) Increment(ctx context.Context, name string) ([]domain.Item, error) {
	return nil, errors.New("store unavailable")
}

func (brokenInventory) Decrement(ctx context.Context, name string) ([]domain.Item, error) {
	return nil, errors.New("store unavailable")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and, if it started a store operation, runs
// the command and feeds its result too. Cursor blink commands are dropped.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil || !m.busy {
		return m
	}
	if synced, ok := cmd().(syncedMsg); ok {
		next, _ = m.Update(synced)
		m = next.(Model)
	}
	return m
}

func newLoadedModel(t *testing.T, names ...string) Model {
	t.Helper()

	svc := service.NewInventoryService(storage.NewMemoryStore(), "", 0, nil)
	for _, n := range names {
		if _, err := svc.Increment(context.Background(), n); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}

	m := New(context.Background(), svc, view.NewState())
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func TestModel_InitialLoad(t *testing.T) {
	m := newLoadedModel(t, "apple")

	if m.busy {
		t.Error("expected model to be idle after load")
	}
	want := []domain.Item{{Name: "apple", Quantity: 1}}
	if diff := cmp.Diff(want, m.state.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "Apple") {
		t.Errorf("expected display-cased name in view:\n%s", m.View())
	}
}

func TestModel_IncrementDecrementSelected(t *testing.T) {
	m := newLoadedModel(t, "apple")

	m = send(t, m, runes("+"))
	if got := m.state.Items()[0].Quantity; got != 2 {
		t.Errorf("expected quantity 2, got %d", got)
	}

	m = send(t, m, runes("-"))
	m = send(t, m, runes("-"))
	if got := len(m.state.Items()); got != 0 {
		t.Errorf("expected item removed, got %v", m.state.Items())
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestModel_IgnoresMutationsWhileBusy(t *testing.T) {
	m := newLoadedModel(t, "apple")
	m.busy = true

	_, cmd := m.Update(runes("+"))
	if cmd != nil {
		t.Error("expected no command while busy")
	}
}

func TestModel_AddDialog(t *testing.T) {
	m := newLoadedModel(t)

	m = send(t, m, runes("a"))
	if m.mode != modeAdd {
		t.Fatalf("expected add mode, got %v", m.mode)
	}
	m = send(t, m, runes("Kiwi"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Errorf("expected dialog closed, got mode %v", m.mode)
	}
	want := []domain.Item{{Name: "Kiwi", Quantity: 1}}
	if diff := cmp.Diff(want, m.state.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if m.add.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.add.Value())
	}
}

func TestModel_AddDialogRejectsBlankName(t *testing.T) {
	m := newLoadedModel(t)

	m = send(t, m, runes("a"))
	m = send(t, m, runes("   "))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeAdd {
		t.Errorf("expected dialog to stay open, got mode %v", m.mode)
	}
	if m.addErr == "" {
		t.Error("expected validation message")
	}
	if len(m.state.Items()) != 0 {
		t.Errorf("expected no items, got %v", m.state.Items())
	}
}

func TestModel_Search(t *testing.T) {
	m := newLoadedModel(t, "Apple", "pineapple", "banana")

	m = send(t, m, runes("/"))
	m = send(t, m, runes("APP"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Errorf("expected browse mode, got %v", m.mode)
	}
	if got := len(m.state.Visible()); got != 2 {
		t.Errorf("expected 2 visible items, got %v", m.state.Visible())
	}
	if got := len(m.state.Items()); got != 3 {
		t.Errorf("expected cache to keep 3 items, got %d", got)
	}
}

func TestModel_FailureKeepsStaleView(t *testing.T) {
	m := newLoadedModel(t, "apple")
	m.inventory = brokenInventory{}

	m = send(t, m, runes("+"))

	if got := m.state.Items()[0].Quantity; got != 1 {
		t.Errorf("expected stale quantity 1, got %d", got)
	}
	if m.state.Err() == nil {
		t.Error("expected error recorded in view state")
	}
	if !strings.Contains(m.View(), "increment failed") {
		t.Errorf("expected failure in status line:\n%s", m.View())
	}
}

func TestModel_Quit(t *testing.T) {
	m := newLoadedModel(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

// rotatingInventory hands back every snapshot in a different order, like a
// store without ordering guarantees.
type rotatingInventory struct {
	Inventory
	calls int
}

func (r *rotatingInventory) rotate(items []domain.Item, err error) ([]domain.Item, error) {
	if err != nil || len(items) == 0 {
		return items, err
	}
	r.calls++
	n := r.calls % len(items)
	out := make([]domain.Item, 0, len(items))
	out = append(out, items[n:]...)
	return append(out, items[:n]...), nil
}

func (r *rotatingInventory) List(ctx context.Context) ([]domain.Item, error) {
	return r.rotate(r.Inventory.List(ctx))
}

func (r *rotatingInventory) Increment(ctx context.Context, name string) ([]domain.Item, error) {
	return r.rotate(r.Inventory.Increment(ctx, name))
}

func (r *rotatingInventory) Decrement(ctx context.Context, name string) ([]domain.Item, error) {
	return r.rotate(r.Inventory.Decrement(ctx, name))
}

func TestModel_SelectionSurvivesReordering(t *testing.T) {
	names := []string{"kiwi", "Apple", "fig", "date", "cherry", "banana", "grape", "lemon"}
	m := newLoadedModel(t, names...)
	m.inventory = &rotatingInventory{Inventory: m.inventory}

	for i := 0; i < 3; i++ {
		m = send(t, m, runes("j"))
	}
	target, ok := m.selected()
	if !ok || target.Name != "date" {
		t.Fatalf("expected row 3 to be date in name order, got %+v", target)
	}

	const presses = 20
	for i := 0; i < presses; i++ {
		m = send(t, m, runes("+"))
		if got, _ := m.selected(); got.Name != target.Name {
			t.Fatalf("after %d increments cursor moved to %q", i+1, got.Name)
		}
	}

	for _, it := range m.state.Items() {
		want := 1
		if it.Name == target.Name {
			want = 1 + presses
		}
		if it.Quantity != want {
			t.Errorf("%s: expected quantity %d, got %d", it.Name, want, it.Quantity)
		}
	}
}

func TestModel_RowsInNameOrder(t *testing.T) {
	m := newLoadedModel(t, "kiwi", "Apple", "banana")

	var got []string
	for _, it := range m.rows() {
		got = append(got, it.Name)
	}
	want := []string{"Apple", "banana", "kiwi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}
