package geocode

// BoundingBox is a latitude/longitude rectangle.
type BoundingBox struct {
	North float64
	South float64
	West  float64
	East  float64
}

// ContinentalUS bounds the contiguous United States.
var ContinentalUS = BoundingBox{
	North: 49.3457868,
	South: 24.7433195,
	West:  -124.7844079,
	East:  -66.9513812,
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Filter returns a copy of lookups where points outside box become misses.
func Filter(lookups []Lookup, box BoundingBox) []Lookup {
	out := make([]Lookup, len(lookups))
	for i, l := range lookups {
		out[i] = l
		if l.Point != nil && !box.Contains(*l.Point) {
			out[i].Point = nil
		}
	}
	return out
}
