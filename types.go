package rawmap

import (
	"fmt"

	osm "github.com/omniscale/go-osm"
)

// AreaType classifies a RawArea.
type AreaType uint8

const (
	AreaPark AreaType = iota
	AreaWater
	AreaIsland
	AreaMedianStrip
	AreaPedestrianPlaza
)

func (t AreaType) String() string {
	switch t {
	case AreaPark:
		return "park"
	case AreaWater:
		return "water"
	case AreaIsland:
		return "island"
	case AreaMedianStrip:
		return "median_strip"
	case AreaPedestrianPlaza:
		return "pedestrian_plaza"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// RouteType distinguishes bus and train routes.
type RouteType uint8

const (
	RouteBus RouteType = iota
	RouteTrain
)

func (t RouteType) String() string {
	switch t {
	case RouteBus:
		return "bus"
	case RouteTrain:
		return "train"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// An Amenity is one business or point of interest attached to a
// building. A building can hold several.
type Amenity struct {
	Name string
	// Kind is the raw amenity/shop/leisure value from the source tags
	// ("restaurant", "supermarket").
	Kind    string
	OsmTags osm.Tags
}

// AmenityType is a coarse grouping of amenity kinds, used by the
// editor to filter buildings.
type AmenityType uint8

const (
	AmenityBank AmenityType = iota
	AmenityBar
	AmenityCafe
	AmenityChildcare
	AmenityEducation
	AmenityFood
	AmenityGroceries
	AmenityMedical
	AmenityReligious
	AmenityShopping
)

var amenityKinds = map[string]AmenityType{
	"bank":             AmenityBank,
	"bar":              AmenityBar,
	"pub":              AmenityBar,
	"nightclub":        AmenityBar,
	"cafe":             AmenityCafe,
	"childcare":        AmenityChildcare,
	"kindergarten":     AmenityChildcare,
	"college":          AmenityEducation,
	"school":           AmenityEducation,
	"university":       AmenityEducation,
	"fast_food":        AmenityFood,
	"food_court":       AmenityFood,
	"restaurant":       AmenityFood,
	"convenience":      AmenityGroceries,
	"greengrocer":      AmenityGroceries,
	"supermarket":      AmenityGroceries,
	"clinic":           AmenityMedical,
	"dentist":          AmenityMedical,
	"hospital":         AmenityMedical,
	"pharmacy":         AmenityMedical,
	"place_of_worship": AmenityReligious,
	"department_store": AmenityShopping,
	"mall":             AmenityShopping,
	"marketplace":      AmenityShopping,
}

// CategorizeAmenity maps a raw amenity kind to its coarse type. The
// second result is false for kinds outside the known grouping.
func CategorizeAmenity(kind string) (AmenityType, bool) {
	t, ok := amenityKinds[kind]
	return t, ok
}
