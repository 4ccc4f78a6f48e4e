package domain

// Represents a single delivery unit handled by the planner.
// A Package is created at its Start place and is delivered once it
// rests on its Target place. Both are place ids into Model.Places.
type Package struct {
	PackageID int
	Start     int
	Target    int
}

// TargetCity returns the city that owns the package's target place.
func (m *Model) TargetCity(pkg int) int {
	return m.Places[m.Packages[pkg].Target].CityID
}

// TargetInCity returns the place a package should be brought to while it is
// handled inside city: the exact target when the target lies in that city,
// otherwise the city's airport (staging for the next flight).
func (m *Model) TargetInCity(pkg int, city int) int {
	target := m.Packages[pkg].Target
	if m.Places[target].CityID == city {
		return target
	}
	return m.Cities[city].Airport
}

// IsSettled reports whether a package sitting on place has nothing left to do.
func (m *Model) IsSettled(pkg int, place int) bool {
	return m.Packages[pkg].Target == place
}
