package domain

import "fmt"

// AllCities disables the city restriction of a Scope.
const AllCities = -1

// Scope selects which part of the problem a search works on: the enabled
// vehicle classes and, optionally, a single city whose places and trucks
// are the only ones considered.
type Scope struct {
	Planes bool
	Trucks bool
	City   int
}

// GlobalScope enables every vehicle in every city.
func GlobalScope() Scope { return Scope{Planes: true, Trucks: true, City: AllCities} }

// CityScope enables only the trucks working inside city.
func CityScope(city int) Scope { return Scope{Trucks: true, City: city} }

// PlaneScope enables only planes, across all cities.
func PlaneScope() Scope { return Scope{Planes: true, City: AllCities} }

// Permits reports whether a place owned by city lies inside the scope.
func (s Scope) Permits(city int) bool {
	return s.City == AllCities || s.City == city
}

func (s Scope) String() string {
	switch {
	case s.Planes && s.Trucks && s.City == AllCities:
		return "global"
	case s.Planes && !s.Trucks && s.City == AllCities:
		return "planes"
	case s.Trucks && !s.Planes && s.City != AllCities:
		return fmt.Sprintf("city-%d", s.City)
	default:
		return fmt.Sprintf("planes=%t trucks=%t city=%d", s.Planes, s.Trucks, s.City)
	}
}
