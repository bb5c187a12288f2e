package service

// BandScoreService converts a raw correct count into the 0.0-9.0 band scale.
// Pure, no state.
type BandScoreService interface {
	BandFromRaw(correct, total int) float64
}

type bandScoreService struct{}

func NewBandScoreService() BandScoreService {
	return &bandScoreService{}
}

// bandThresholds is evaluated top to bottom, first match wins. The spacing is
// intentionally irregular: 0.85 and 0.75 are adjacent steps with no 0.80
// threshold between them.
var bandThresholds = []struct {
	minPct float64
	band   float64
}{
	{0.95, 9.0},
	{0.90, 8.5},
	{0.85, 8.0},
	{0.75, 7.5},
	{0.70, 7.0},
	{0.65, 6.5},
	{0.60, 6.0},
	{0.55, 5.5},
	{0.50, 5.0},
	{0.45, 4.5},
}

// BandFromRaw maps correct/total through the threshold table. A test with no
// questions cannot produce a meaningful band and yields 0.0.
func (s *bandScoreService) BandFromRaw(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	pct := float64(correct) / float64(total)
	for _, t := range bandThresholds {
		if pct >= t.minPct {
			return t.band
		}
	}
	return 4.0
}
