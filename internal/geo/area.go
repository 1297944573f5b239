package geo

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/circufert/circufert-cli/internal/model"
)

const earthRadiusKM = 6371.0

// Bounds is a lat/long bounding box.
type Bounds struct {
	MinLat  float64 `json:"min_lat" yaml:"min_lat"`
	MinLong float64 `json:"min_long" yaml:"min_long"`
	MaxLat  float64 `json:"max_lat" yaml:"max_lat"`
	MaxLong float64 `json:"max_long" yaml:"max_long"`
}

// FarmReach is one customer farm's position in the service area.
type FarmReach struct {
	FarmerID   string  `json:"farmer_id" yaml:"farmer_id"`
	FarmName   string  `json:"farm_name" yaml:"farm_name"`
	Located    bool    `json:"located" yaml:"located"`
	DistanceKM float64 `json:"distance_km" yaml:"distance_km"`
	Class      string  `json:"class" yaml:"class"`
}

// ServiceArea is the geographic spread of a company's customer farms.
type ServiceArea struct {
	CompanyID   string             `json:"company_id" yaml:"company_id"`
	Farms       int                `json:"farms" yaml:"farms"`
	Located     int                `json:"located" yaml:"located"`
	Centroid    *model.Coordinates `json:"centroid,omitempty" yaml:"centroid,omitempty"`
	Bounds      *Bounds            `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	MaxRadiusKM float64            `json:"max_radius_km" yaml:"max_radius_km"`
	Reach       []FarmReach        `json:"reach" yaml:"reach"`
}

// Area computes the service area of a company. Farms without valid
// coordinates are counted but not placed; with none placed the area has no
// centroid or bounds.
func Area(c *model.Company) ServiceArea {
	area := ServiceArea{
		CompanyID: c.ID,
		Farms:     len(c.Customers),
		Reach:     make([]FarmReach, 0, len(c.Customers)),
	}

	flat := make([]float64, 0, 2*len(c.Customers))
	for _, f := range c.Customers {
		if p, ok := position(f); ok {
			flat = append(flat, p.Long, p.Lat)
		}
	}
	area.Located = len(flat) / 2

	var centroid model.Coordinates
	if area.Located > 0 {
		mp := geom.NewMultiPointFlat(geom.XY, flat)
		b := mp.Bounds()
		area.Bounds = &Bounds{
			MinLong: b.Min(0), MinLat: b.Min(1),
			MaxLong: b.Max(0), MaxLat: b.Max(1),
		}

		for i := 0; i < mp.NumPoints(); i++ {
			pt := mp.Point(i)
			centroid.Long += pt.X()
			centroid.Lat += pt.Y()
		}
		centroid.Long /= float64(area.Located)
		centroid.Lat /= float64(area.Located)
		area.Centroid = &centroid
	}

	for _, f := range c.Customers {
		r := FarmReach{FarmerID: f.ID, FarmName: f.FarmName}
		if p, ok := position(f); ok && area.Centroid != nil {
			r.Located = true
			r.DistanceKM = haversineKM(centroid.Lat, centroid.Long, p.Lat, p.Long)
			area.MaxRadiusKM = math.Max(area.MaxRadiusKM, r.DistanceKM)
		}
		r.Class = Classify(r.Located, r.DistanceKM)
		area.Reach = append(area.Reach, r)
	}
	return area
}

// Areas computes service areas for all companies in order.
func Areas(companies []model.Company) []ServiceArea {
	out := make([]ServiceArea, 0, len(companies))
	for i := range companies {
		out = append(out, Area(&companies[i]))
	}
	return out
}

// position returns the farm's coordinates when present and in range.
func position(f model.Farmer) (model.Coordinates, bool) {
	c := f.Location.Coordinates
	if c == nil {
		return model.Coordinates{}, false
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Long) || math.Abs(c.Lat) > 90 || math.Abs(c.Long) > 180 {
		return model.Coordinates{}, false
	}
	return *c, true
}

// haversineKM returns the great-circle distance between two points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(a)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
