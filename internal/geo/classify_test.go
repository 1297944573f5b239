package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		located    bool
		distanceKM float64
		expected   string
	}{
		{name: "core: at centroid", located: true, distanceKM: 0, expected: ReachCore},
		{name: "core: at threshold", located: true, distanceKM: 15, expected: ReachCore},
		{name: "regional: past core threshold", located: true, distanceKM: 15.1, expected: ReachRegional},
		{name: "regional: at threshold", located: true, distanceKM: 60, expected: ReachRegional},
		{name: "remote", located: true, distanceKM: 120, expected: ReachRemote},
		{name: "unknown: no coordinates", located: false, distanceKM: 0, expected: ReachUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.located, tt.distanceKM))
		})
	}
}
