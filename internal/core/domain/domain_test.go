package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"apple", "Apple"},
		{"Apple", "Apple"},
		{"éclair", "Éclair"},
		{"", ""},
		{"1kg rice", "1kg rice"},
	}

	for _, tt := range tests {
		got := Item{Name: tt.name}.DisplayName()
		if got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n"} {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	for _, name := range []string{"apple", " Apple ", "a"} {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q): unexpected error %v", name, err)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	valid := []struct {
		in   any
		want int
	}{
		{1, 1},
		{int32(4), 4},
		{int64(7), 7},
		{float64(3), 3},
		{json.Number("12"), 12},
		{"5", 5},
		{" 9 ", 9},
		{[]byte("2"), 2},
	}
	for _, tt := range valid {
		got, err := ParseQuantity(tt.in)
		if err != nil {
			t.Errorf("ParseQuantity(%#v): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuantity(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}

	invalid := []any{nil, 0, int64(-3), 1.5, "abc", "", json.Number("2.5"), true}
	for _, in := range invalid {
		if _, err := ParseQuantity(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("ParseQuantity(%#v): expected ErrInvalidQuantity, got %v", in, err)
		}
	}
}

func TestFilter(t *testing.T) {
	items := []Item{
		{Name: "Apple", Quantity: 1},
		{Name: "pineapple", Quantity: 2},
		{Name: "Banana", Quantity: 3},
	}

	tests := []struct {
		query string
		want  []Item
	}{
		{"", items},
		{"apple", []Item{items[0], items[1]}},
		{"APPLE", []Item{items[0], items[1]}},
		{"aPp", []Item{items[0], items[1]}},
		{"nan", []Item{items[2]}},
		{"cherry", []Item{}},
	}

	for _, tt := range tests {
		got := Filter(items, tt.query)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	items := []Item{{Name: "apple", Quantity: 1}}

	got := Filter(items, "")
	got[0].Quantity = 99

	if items[0].Quantity != 1 {
		t.Errorf("expected input to be untouched, got quantity %d", items[0].Quantity)
	}
}

func TestParseQuantity_Limit(t *testing.T) {
	if got, err := ParseQuantity(int64(MaxQuantity)); err != nil || got != MaxQuantity {
		t.Errorf("ParseQuantity(MaxQuantity) = %d, %v", got, err)
	}
	if _, err := ParseQuantity(int64(MaxQuantity) + 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity above the limit, got %v", err)
	}
}

func TestSortByName(t *testing.T) {
	items := []Item{
		{Name: "banana"},
		{Name: "apple"},
		{Name: "Cherry"},
		{Name: "Apple"},
	}

	SortByName(items)

	want := []Item{{Name: "Apple"}, {Name: "apple"}, {Name: "banana"}, {Name: "Cherry"}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
