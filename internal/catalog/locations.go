package catalog

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Lat float32
	Lng float32
}

// Locations maps a project's location name to its coordinate.
type Locations map[string]Coordinate

// Lookup returns the coordinate for name. Unknown names report false; callers skip them.
func (l Locations) Lookup(name string) (Coordinate, bool) {
	c, ok := l[name]
	return c, ok
}

// DefaultLocations returns the fixed table of places the practice has built in.
// A fresh map is returned so callers cannot mutate the shared table.
func DefaultLocations() Locations {
	return Locations{
		"NEW YORK":  {Lat: 40.7128, Lng: -74.0060},
		"LONDON":    {Lat: 51.5074, Lng: -0.1278},
		"ROTTERDAM": {Lat: 51.9244, Lng: 4.4777},
		"BEIJING":   {Lat: 39.9042, Lng: 116.4074},
		"SHENZHEN":  {Lat: 22.5431, Lng: 114.0579},
		"DUBAI":     {Lat: 25.2048, Lng: 55.2708},
		"SEOUL":     {Lat: 37.5665, Lng: 126.9780},
		"SAO PAULO": {Lat: -23.5505, Lng: -46.6333},
		"LAGOS":     {Lat: 6.5244, Lng: 3.3792},
	}
}
