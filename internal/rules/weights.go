package rules

import "fmt"

// DefaultWeight is the neutral value assumed for any dimension the caller
// leaves unset.
const DefaultWeight = 5

// WeightProfile maps recognized weight dimensions to an integer in
// [MinWeight, MaxWeight]. A downstream scheduler reads these as relative
// dials when trading off competing assignments.
type WeightProfile map[string]int

// Weight dimension names.
const (
	DimPriorityLevel = "priorityLevel"
	DimFairness      = "fairness"
	DimCost          = "cost"
	DimSpeed         = "speed"
	DimQuality       = "quality"
)

// Dimensions lists every recognized dimension, in display order.
func Dimensions() []string {
	return []string{DimPriorityLevel, DimFairness, DimCost, DimSpeed, DimQuality}
}

// NormalizeWeights validates a raw weight map against the recognized
// dimension set. Unrecognized names are rejected, out-of-range values are
// rejected, and missing dimensions are filled with DefaultWeight.
func NormalizeWeights(in map[string]int) (WeightProfile, error) {
	recognized := make(map[string]bool, len(Dimensions()))
	for _, d := range Dimensions() {
		recognized[d] = true
	}
	for name, v := range in {
		if !recognized[name] {
			return nil, fmt.Errorf("unrecognized weight dimension %q", name)
		}
		if v < MinWeight || v > MaxWeight {
			return nil, fmt.Errorf("weight %q=%d outside %d..%d", name, v, MinWeight, MaxWeight)
		}
	}
	out := make(WeightProfile, len(Dimensions()))
	for _, d := range Dimensions() {
		if v, ok := in[d]; ok {
			out[d] = v
		} else {
			out[d] = DefaultWeight
		}
	}
	return out, nil
}

// DefaultWeights is a profile with every dimension at the neutral value.
func DefaultWeights() WeightProfile {
	w, _ := NormalizeWeights(nil)
	return w
}
