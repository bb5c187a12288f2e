package service

import "testing"

func TestBandFromRawThresholds(t *testing.T) {
	bandScore := NewBandScoreService()

	// Percent boundaries expressed over total=100 so each case lands exactly
	// on or just under a threshold.
	tests := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"perfect score", 100, 100, 9.0},
		{"exactly 95 percent", 95, 100, 9.0},
		{"just under 95 percent", 94, 100, 8.5},
		{"exactly 90 percent", 90, 100, 8.5},
		{"just under 90 percent", 89, 100, 8.0},
		{"exactly 85 percent", 85, 100, 8.0},
		{"just under 85 percent skips to 7.5", 84, 100, 7.5},
		{"exactly 75 percent", 75, 100, 7.5},
		{"just under 75 percent", 74, 100, 7.0},
		{"exactly 70 percent", 70, 100, 7.0},
		{"just under 70 percent", 69, 100, 6.5},
		{"exactly 65 percent", 65, 100, 6.5},
		{"just under 65 percent", 64, 100, 6.0},
		{"exactly 60 percent", 60, 100, 6.0},
		{"just under 60 percent", 59, 100, 5.5},
		{"exactly 55 percent", 55, 100, 5.5},
		{"just under 55 percent", 54, 100, 5.0},
		{"exactly 50 percent", 50, 100, 5.0},
		{"just under 50 percent", 49, 100, 4.5},
		{"exactly 45 percent", 45, 100, 4.5},
		{"just under 45 percent floors at 4.0", 44, 100, 4.0},
		{"zero correct floors at 4.0", 0, 100, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bandScore.BandFromRaw(tt.correct, tt.total)
			if got != tt.want {
				t.Errorf("BandFromRaw(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestBandFromRawSmallTests(t *testing.T) {
	bandScore := NewBandScoreService()

	tests := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"19 of 20 is 95 percent", 19, 20, 9.0},
		{"18 of 20 is 90 percent", 18, 20, 8.5},
		{"17 of 20 is 85 percent", 17, 20, 8.0},
		{"16 of 20 falls to 7.5", 16, 20, 7.5},
		{"1 of 2 is exactly half", 1, 2, 5.0},
		{"1 of 3 floors at 4.0", 1, 3, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bandScore.BandFromRaw(tt.correct, tt.total)
			if got != tt.want {
				t.Errorf("BandFromRaw(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestBandFromRawEmptyTest(t *testing.T) {
	bandScore := NewBandScoreService()

	if got := bandScore.BandFromRaw(0, 0); got != 0.0 {
		t.Errorf("BandFromRaw(0, 0) = %v, want 0.0", got)
	}
}
