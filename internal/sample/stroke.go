package sample

// Channels is a bundle of equally long channel slices.
type Channels struct {
	X        []float64
	Y        []float64
	Time     []float64
	Azimuth  []float64
	Tilt     []float64
	Pressure []float64
}

// Len is the number of points.
func (c Channels) Len() int { return len(c.Time) }

// Duration is the time span covered, or 0 for fewer than two points.
func (c Channels) Duration() float64 {
	if len(c.Time) < 2 {
		return 0
	}
	lo, hi := c.Time[0], c.Time[0]
	for _, v := range c.Time[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

func (c *Channels) appendFrom(o Channels) {
	c.X = append(c.X, o.X...)
	c.Y = append(c.Y, o.Y...)
	c.Time = append(c.Time, o.Time...)
	c.Azimuth = append(c.Azimuth, o.Azimuth...)
	c.Tilt = append(c.Tilt, o.Tilt...)
	c.Pressure = append(c.Pressure, o.Pressure...)
}

// Stroke is a maximal run of points sharing one pen status.
type Stroke struct {
	OnSurface bool
	Start     int // index of the first point in the trajectory
	Channels
}

// Split partitions t into strokes in temporal order. Stroke channels are
// capacity-limited views into t and must not be appended to.
func Split(t *Trajectory) []Stroke {
	var strokes []Stroke
	n := t.Len()
	for start := 0; start < n; {
		end := start + 1
		for end < n && t.PenStatus[end] == t.PenStatus[start] {
			end++
		}
		strokes = append(strokes, Stroke{
			OnSurface: t.PenStatus[start],
			Start:     start,
			Channels: Channels{
				X:        t.X[start:end:end],
				Y:        t.Y[start:end:end],
				Time:     t.Time[start:end:end],
				Azimuth:  t.Azimuth[start:end:end],
				Tilt:     t.Tilt[start:end:end],
				Pressure: t.Pressure[start:end:end],
			},
		})
		start = end
	}
	return strokes
}
