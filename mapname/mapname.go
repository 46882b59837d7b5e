// Package mapname holds the structured identity of a map: which city
// it belongs to and which named extract of that city it covers. The
// name doubles as the snapshot key, so two pipeline runs for the same
// name overwrite each other.
package mapname

import "fmt"

// A CityName identifies the city a map belongs to. Country is a
// lowercase two-letter code, City a lowercase filesystem-safe name
// ("gb", "london").
type CityName struct {
	Country string
	City    string
}

func NewCityName(country, city string) CityName {
	return CityName{Country: country, City: city}
}

func (c CityName) String() string {
	return c.Country + "/" + c.City
}

// A MapName identifies one map extract. Map distinguishes multiple
// extracts of the same city ("southbank", "center").
type MapName struct {
	City CityName
	Map  string
}

func New(country, city, mapName string) MapName {
	return MapName{City: NewCityName(country, city), Map: mapName}
}

// Key returns the snapshot store key for this name. Keys are
// hierarchical so a whole city can be matched by prefix.
func (n MapName) Key() string {
	return n.City.Country + "/" + n.City.City + "/" + n.Map
}

func (n MapName) String() string {
	return fmt.Sprintf("%s (%s)", n.Map, n.City)
}
