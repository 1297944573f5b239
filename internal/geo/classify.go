// Package geo describes where a company's customer farms lie: the service
// area they span and how far each farm sits from its centre.
package geo

// Reach classes of a farm relative to the service area centroid.
const (
	ReachCore     = "core"
	ReachRegional = "regional"
	ReachRemote   = "remote"
	ReachUnknown  = "unknown"
)

// Distance thresholds for classification (kilometers).
const (
	coreThresholdKM     = 15.0
	regionalThresholdKM = 60.0
)

// Classify returns the reach class for a farm at distanceKM from the
// centroid. Farms without coordinates are ReachUnknown.
// Rules:
//   - core: distance <= 15km
//   - regional: distance <= 60km
//   - remote: distance > 60km
func Classify(located bool, distanceKM float64) string {
	if !located {
		return ReachUnknown
	}
	if distanceKM <= coreThresholdKM {
		return ReachCore
	}
	if distanceKM <= regionalThresholdKM {
		return ReachRegional
	}
	return ReachRemote
}
