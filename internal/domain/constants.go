package domain

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Locations where slots are offered.
const (
	LocationBangkok = "Bangkok"
	LocationRayong  = "Rayong"

	// DefaultLocation is assumed for any slot or booking that carries no location.
	DefaultLocation = LocationBangkok
)

// Locations lists the known locations in display order.
var Locations = []string{LocationBangkok, LocationRayong}

// IsKnownLocation reports whether loc is one of Locations.
func IsKnownLocation(loc string) bool {
	for _, l := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// ResolveLocation maps an empty location to DefaultLocation.
func ResolveLocation(loc string) string {
	if loc == "" {
		return DefaultLocation
	}
	return loc
}
