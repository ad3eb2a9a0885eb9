package catalog

import "time"

// FocusPreset is a timed focus ("dungeon") session and its payout.
type FocusPreset struct {
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`
	XP       int           `json:"xpReward"`
	Gold     int           `json:"goldReward"`
}

var focusPresets = []FocusPreset{
	{"15m", 15 * time.Minute, 30, 15},
	{"25m", 25 * time.Minute, 50, 25},
	{"45m", 45 * time.Minute, 100, 50},
	{"60m", 60 * time.Minute, 150, 75},
}

func FocusPresets() []FocusPreset {
	out := make([]FocusPreset, len(focusPresets))
	copy(out, focusPresets)
	return out
}

// FocusPresetByLabel returns the preset with the given label, e.g. "25m".
func FocusPresetByLabel(label string) (FocusPreset, bool) {
	for _, p := range focusPresets {
		if p.Label == label {
			return p, true
		}
	}
	return FocusPreset{}, false
}
