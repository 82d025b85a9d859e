package picker

import "testing"

func TestMultipleTitleByCount(t *testing.T) {
	m := Multiple()
	cases := []struct {
		count int
		want  string
	}{
		{0, "No Collections Selected"},
		{1, "1 Collection Selected"},
		{2, "2 Collections Selected"},
		{7, "7 Collections Selected"},
	}
	for _, tc := range cases {
		if got := m.title(tc.count); got != tc.want {
			t.Errorf("title(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestSingleTitleIsFixed(t *testing.T) {
	m := Single("Move to Collection")
	for _, count := range []int{0, 1, 5} {
		if got := m.title(count); got != "Move to Collection" {
			t.Errorf("title(%d) = %q, want fixed title", count, got)
		}
	}
	if !m.IsSingle() {
		t.Error("Single mode should report IsSingle")
	}
	if Multiple().IsSingle() {
		t.Error("Multiple mode should not report IsSingle")
	}
}
