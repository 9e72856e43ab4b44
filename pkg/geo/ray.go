package geo

// Hit describes where a ray march stopped.
type Hit struct {
	// Distance is the last distance along the ray that was still free.
	Distance float64
	// Point is the position at Distance.
	Point Point
	// Blocked is false when the march ran out to its maximum distance.
	Blocked bool
}

// March walks from origin along dir (normalized internally) in fixed steps
// until blocked reports true or maxDist is exceeded. The origin itself is not
// tested.
func March(origin, dir Point, step, maxDist float64, blocked func(Point) bool) Hit {
	dir = dir.Normalize()
	if step <= 0 || dir == (Point{}) {
		return Hit{Point: origin}
	}
	free := 0.0
	for d := step; d <= maxDist+1e-9; d += step {
		p := origin.Add(dir.Scale(d))
		if blocked(p) {
			return Hit{Distance: free, Point: origin.Add(dir.Scale(free)), Blocked: true}
		}
		free = d
	}
	return Hit{Distance: free, Point: origin.Add(dir.Scale(free))}
}
