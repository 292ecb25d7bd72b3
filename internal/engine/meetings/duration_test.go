package meetings

import "testing"

func TestComputeDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"45 minute meeting", "09:00", "09:45", 45},
		{"two hours", "10:00", "12:00", 120},
		{"with seconds", "09:00:00", "10:30:00", 90},
		{"end before start falls back", "10:00", "09:00", 60},
		{"equal times fall back", "09:00", "09:00", 60},
		{"garbage start falls back", "nine", "10:00", 60},
		{"garbage end falls back", "09:00", "", 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDuration(tc.start, tc.end)
			if got != tc.want {
				t.Errorf("ComputeDuration(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
