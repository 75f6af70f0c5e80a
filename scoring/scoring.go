package scoring

import (
	"math"

	"github.com/poiesic/scout/core"
)

// basePoints is the fixed point value of one signal of each type.
var basePoints = map[core.SignalType]float64{
	core.SignalCaption:      100,
	core.SignalAudio:        75,
	core.SignalVisual:       50,
	core.SignalPersonalNote: 0,
}

// densityMultipliers scales a signal by how prominent it is in the post.
var densityMultipliers = map[core.Density]float64{
	core.DensityProminent: 1.2,
	core.DensityModerate:  1.0,
	core.DensityPassing:   0.7,
}

// bucketOrder is the dominant-signal tie-break order.
var bucketOrder = []core.SignalType{core.SignalCaption, core.SignalAudio, core.SignalVisual}

const (
	// fullReinforcementBonus is awarded when all three scoring types are present.
	fullReinforcementBonus = 50.0
	// pairReinforcementBonus is awarded when exactly two scoring types are present.
	pairReinforcementBonus = 25.0
)

// BasePoints returns the points one signal of type t is worth before
// multipliers. Unknown types are worth nothing.
func BasePoints(t core.SignalType) float64 {
	return basePoints[t]
}

// FrequencyMultiplier returns the diminishing-returns multiplier for a
// signal seen f times. It is non-decreasing in f.
func FrequencyMultiplier(f int) float64 {
	m := 1.0
	if f >= 2 {
		m += 0.15
	}
	if f >= 3 {
		m += 0.15
	}
	if f >= 4 {
		m += 0.10
	}
	if f >= 5 {
		m += 0.10
	}
	if f > 5 {
		m += 0.05 * float64(f-5)
	}
	return m
}

// DensityMultiplier returns the multiplier for density d.
// Unknown densities score as moderate.
func DensityMultiplier(d core.Density) float64 {
	if m, ok := densityMultipliers[d]; ok {
		return m
	}
	return 1.0
}

// ReinforcementBonus returns the bonus for the number of distinct scoring
// signal types present in a post.
func ReinforcementBonus(distinctTypes int) float64 {
	switch {
	case distinctTypes >= 3:
		return fullReinforcementBonus
	case distinctTypes == 2:
		return pairReinforcementBonus
	default:
		return 0
	}
}

// Score computes the score breakdown for a list of signals.
// It never fails; an empty list yields a zero breakdown with no dominant
// signal. SignalCount is the number of distinct input types, including
// personal notes and unknown types. NormalizedScore is always left at zero.
func Score(signals []core.Signal) core.ScoreBreakdown {
	buckets := make(map[core.SignalType]float64, len(bucketOrder))
	details := make([]core.SignalScoreDetail, 0, len(signals))
	seen := make(map[core.SignalType]struct{}, len(signals))

	for _, s := range signals {
		seen[s.Type] = struct{}{}
		base := BasePoints(s.Type)
		freq := FrequencyMultiplier(s.Frequency)
		density := DensityMultiplier(s.Density)
		points := base * freq * density

		if base > 0 {
			buckets[s.Type] += points
		}

		details = append(details, core.SignalScoreDetail{
			Type:                s.Type,
			BasePoints:          base,
			FrequencyMultiplier: round2(freq),
			DensityMultiplier:   density,
			TotalPoints:         round2(points),
		})
	}

	caption := round2(buckets[core.SignalCaption])
	audio := round2(buckets[core.SignalAudio])
	visual := round2(buckets[core.SignalVisual])
	bonus := ReinforcementBonus(len(buckets))
	dom := dominant(map[core.SignalType]float64{
		core.SignalCaption: caption,
		core.SignalAudio:   audio,
		core.SignalVisual:  visual,
	})

	return core.ScoreBreakdown{
		CaptionPoints:      caption,
		AudioPoints:        audio,
		VisualPoints:       visual,
		ReinforcementBonus: bonus,
		BaseTotal:          round2(caption + audio + visual + bonus),
		SignalCount:        len(seen),
		DominantSignal:     dom,
		SignalDetails:      details,
	}
}

// dominant returns the bucket with the strictly highest total, preferring
// earlier buckets on ties, or "" if every bucket is zero.
func dominant(totals map[core.SignalType]float64) core.SignalType {
	var best core.SignalType
	bestTotal := 0.0
	for _, t := range bucketOrder {
		if totals[t] > bestTotal {
			best = t
			bestTotal = totals[t]
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
