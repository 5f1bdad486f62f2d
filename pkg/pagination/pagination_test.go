package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want int }{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{7, 7},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if got := LimitWithBuffer(7); got != 8 {
		t.Errorf("LimitWithBuffer(7) = %d, want 8", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	want := Cursor{
		CreatedAt: time.Date(2025, 4, 2, 10, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}
	token := EncodeCursor(want)

	got, err := ParseCursor(token)
	if err != nil {
		t.Fatalf("ParseCursor: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	t.Parallel()

	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("blank cursor: cursor=%v err=%v", cursor, err)
	}
	for _, token := range []string{"!!!", "bm90LWEtY3Vyc29y"} {
		if _, err := ParseCursor(token); err == nil {
			t.Errorf("ParseCursor(%q) should fail", token)
		}
	}
}
