package rules

import "strings"

// Size is a creature size category.
type Size string

const (
	SizeTiny       Size = "tiny"
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeHuge       Size = "huge"
	SizeGargantuan Size = "gargantuan"
)

// sizeOrder is the fixed six-step ordering relative resizes move along.
var sizeOrder = []Size{SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge, SizeGargantuan}

// sizeIndex returns the position of a size in the ordering, or -1 for an
// unknown size.
func sizeIndex(s Size) int {
	normalized := Size(strings.ToLower(string(s)))
	for i, candidate := range sizeOrder {
		if candidate == normalized {
			return i
		}
	}
	return -1
}

// IsValidSize reports whether s names one of the six size categories.
func IsValidSize(s Size) bool {
	return sizeIndex(s) >= 0
}

// ResizeCreature moves a size by the given number of steps along the size
// ordering, saturating at tiny and gargantuan. An unknown starting size is
// returned unchanged.
func ResizeCreature(s Size, steps int) Size {
	idx := sizeIndex(s)
	if idx < 0 {
		return s
	}
	idx += steps
	if idx < 0 {
		idx = 0
	}
	if idx > len(sizeOrder)-1 {
		idx = len(sizeOrder) - 1
	}
	return sizeOrder[idx]
}

// clampSize applies optional minimum and maximum bounds to a size.
func clampSize(s, min, max Size) Size {
	idx := sizeIndex(s)
	if idx < 0 {
		return s
	}
	if minIdx := sizeIndex(min); minIdx >= 0 && idx < minIdx {
		idx = minIdx
	}
	if maxIdx := sizeIndex(max); maxIdx >= 0 && idx > maxIdx {
		idx = maxIdx
	}
	return sizeOrder[idx]
}
