package iatitests

import (
	"math"

	"github.com/IATI/website-tests/extract"

	"github.com/stretchr/testify/assert"
)

// marginEpsilon absorbs the rounding of margin·reference, so values that sit exactly on a band
// edge, such as 85 at 15% of 100, are inside it.
const marginEpsilon = 1e-9

// WithinMargin reports whether value lies within reference·(1−margin) and reference·(1+margin)
// inclusive. A margin of 0.1 means 10%.
func WithinMargin(value, reference int, margin float64) bool {
	diff := math.Abs(float64(value) - float64(reference))
	allowed := margin * math.Abs(float64(reference))
	return diff <= allowed+marginEpsilon*math.Max(1, math.Abs(float64(reference)))
}

// AssertAtLeast checks that a value has not fallen below a fixed floor.
func AssertAtLeast(t assert.TestingT, value, floor int, label string) bool {
	if value >= floor {
		return true
	}
	return assert.Fail(t, "value below minimum",
		"%s is %d, expected at least %d", label, value, floor)
}

// AssertSame checks that two surfaces of the same site report exactly the same figure.
func AssertSame(t assert.TestingT, a, b int, labelA, labelB string) bool {
	if a == b {
		return true
	}
	return assert.Fail(t, "values differ",
		"%s is %d but %s is %d (difference %d)", labelA, a, labelB, b, a-b)
}

// AssertWithinMargin checks that a value from one site is within a tolerance of the
// corresponding value from another site.
func AssertWithinMargin(t assert.TestingT, value, reference int, margin float64, label, referenceLabel string) bool {
	if WithinMargin(value, reference, margin) {
		return true
	}
	r := float64(reference)
	return assert.Fail(t, "values outside tolerance",
		"%s is %d, expected within %g%% of %s (%d), i.e. between %.0f and %.0f",
		label, value, margin*100, referenceLabel, reference, r*(1-margin), r*(1+margin))
}

// AssertLink checks that a page links to the given URL.
func AssertLink(t assert.TestingT, links extract.LinkSet, target, page string) bool {
	if links.Contains(target) {
		return true
	}
	return assert.Fail(t, "link not found",
		"%q does not link to %s; it has %d distinct links", page, target, links.Len())
}
