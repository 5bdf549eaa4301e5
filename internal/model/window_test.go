package model

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed
}

func TestWindowOverlaps(t *testing.T) {
	base := Window{
		Start: mustTime(t, "2024-01-01T00:00:00Z"),
		End:   mustTime(t, "2024-01-05T00:00:00Z"),
	}

	cases := []struct {
		name  string
		other Window
		want  bool
	}{
		{
			name:  "fully inside",
			other: Window{Start: mustTime(t, "2024-01-02T00:00:00Z"), End: mustTime(t, "2024-01-03T00:00:00Z")},
			want:  true,
		},
		{
			name:  "partial overlap at end",
			other: Window{Start: mustTime(t, "2024-01-03T00:00:00Z"), End: mustTime(t, "2024-01-06T00:00:00Z")},
			want:  true,
		},
		{
			name:  "covers base entirely",
			other: Window{Start: mustTime(t, "2023-12-01T00:00:00Z"), End: mustTime(t, "2024-02-01T00:00:00Z")},
			want:  true,
		},
		{
			name:  "adjacent after does not overlap",
			other: Window{Start: mustTime(t, "2024-01-05T00:00:00Z"), End: mustTime(t, "2024-01-08T00:00:00Z")},
			want:  false,
		},
		{
			name:  "adjacent before does not overlap",
			other: Window{Start: mustTime(t, "2023-12-28T00:00:00Z"), End: mustTime(t, "2024-01-01T00:00:00Z")},
			want:  false,
		},
		{
			name:  "disjoint",
			other: Window{Start: mustTime(t, "2024-02-01T00:00:00Z"), End: mustTime(t, "2024-02-02T00:00:00Z")},
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps() = %v, want %v", got, tc.want)
			}
			// The rule is symmetric.
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: mustTime(t, "2024-01-01T00:00:00Z"),
		End:   mustTime(t, "2024-01-05T00:00:00Z"),
	}

	if !w.Contains(w.Start) {
		t.Errorf("start instant should be inside a half-open window")
	}
	if w.Contains(w.End) {
		t.Errorf("end instant should be outside a half-open window")
	}
	if !w.Contains(mustTime(t, "2024-01-03T12:00:00Z")) {
		t.Errorf("midpoint should be inside")
	}
}

func TestWindowValid(t *testing.T) {
	start := mustTime(t, "2024-01-01T00:00:00Z")
	if (Window{Start: start, End: start}).Valid() {
		t.Errorf("zero-length window should be invalid")
	}
	if (Window{Start: start.Add(time.Hour), End: start}).Valid() {
		t.Errorf("inverted window should be invalid")
	}
	if !(Window{Start: start, End: start.Add(time.Hour)}).Valid() {
		t.Errorf("forward window should be valid")
	}
}
