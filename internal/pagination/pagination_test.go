package pagination

import (
	"encoding/json"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "missing defaults to 1", raw: "", want: 1},
		{name: "malformed defaults to 1", raw: "abc", want: 1},
		{name: "zero clamps to 1", raw: "0", want: 1},
		{name: "negative clamps to 1", raw: "-3", want: 1},
		{name: "valid page", raw: "7", want: 7},
		{name: "no upper clamp", raw: "9999", want: 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePage(tt.raw); got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{page: 1, want: 0},
		{page: 2, want: 10},
		{page: 5, want: 40},
	}

	for _, tt := range tests {
		if got := Offset(tt.page, DefaultPageSize); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, DefaultPageSize, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "empty collection has zero pages", count: 0, want: 0},
		{name: "single item", count: 1, want: 1},
		{name: "exact boundary", count: 10, want: 1},
		{name: "one over boundary", count: 11, want: 2},
		{name: "three pages", count: 25, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.count, DefaultPageSize); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, DefaultPageSize, got, tt.want)
			}
		})
	}
}

func TestNavLinks(t *testing.T) {
	const base = "/assignments/a1/submissions"

	t.Run("first of three pages", func(t *testing.T) {
		links := NavLinks(base, 1, 3)
		if links.NextPage != base+"?page=2" {
			t.Errorf("NextPage = %q, want %q", links.NextPage, base+"?page=2")
		}
		if links.LastPage != base+"?page=3" {
			t.Errorf("LastPage = %q, want %q", links.LastPage, base+"?page=3")
		}
		if links.PrevPage != "" || links.FirstPage != "" {
			t.Errorf("backward links present on page 1: %+v", links)
		}
	})

	t.Run("last of three pages", func(t *testing.T) {
		links := NavLinks(base, 3, 3)
		if links.PrevPage != base+"?page=2" {
			t.Errorf("PrevPage = %q, want %q", links.PrevPage, base+"?page=2")
		}
		if links.FirstPage != base+"?page=1" {
			t.Errorf("FirstPage = %q, want %q", links.FirstPage, base+"?page=1")
		}
		if links.NextPage != "" || links.LastPage != "" {
			t.Errorf("forward links present on last page: %+v", links)
		}
	})

	t.Run("middle page has all four links", func(t *testing.T) {
		links := NavLinks(base, 2, 3)
		if links.NextPage == "" || links.LastPage == "" || links.PrevPage == "" || links.FirstPage == "" {
			t.Errorf("expected all links on middle page, got %+v", links)
		}
	})

	t.Run("single page has no links", func(t *testing.T) {
		links := NavLinks(base, 1, 1)
		if links != (Links{}) {
			t.Errorf("expected no links, got %+v", links)
		}

		// Must serialize as an empty object for endpoint compatibility
		payload, err := json.Marshal(links)
		if err != nil {
			t.Fatalf("marshal links: %v", err)
		}
		if string(payload) != "{}" {
			t.Errorf("empty links serialized as %s, want {}", payload)
		}
	})

	t.Run("beyond last page keeps backward links only", func(t *testing.T) {
		links := NavLinks(base, 5, 3)
		if links.NextPage != "" || links.LastPage != "" {
			t.Errorf("forward links present past the end: %+v", links)
		}
		if links.PrevPage != base+"?page=4" {
			t.Errorf("PrevPage = %q, want %q", links.PrevPage, base+"?page=4")
		}
	})
}
