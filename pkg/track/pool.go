// Package track owns the looping world geometry: fixed rings of road slabs,
// lane markings, ground slabs and sign gantries that advance toward the
// camera each frame and teleport back by exactly one pool span once they pass
// the reposition plane, producing infinite travel from finite objects.
package track

// Pool is a fixed ring of world segments identified by slot index. Members
// are placed at even spacing filling the window behind the reposition plane,
// so the ring tiles seamlessly from the first frame.
type Pool struct {
	zs         []float64
	spacing    float64
	span       float64
	reposition float64
	onWrap     func(index int)
}

// NewPool creates a ring of n members spaced evenly along negative z. The
// member closest to the camera starts one spacing behind the reposition
// plane; reposition must sit safely behind the camera so members never wrap
// while visible.
func NewPool(n int, spacing, reposition float64) *Pool {
	p := &Pool{
		zs:         make([]float64, n),
		spacing:    spacing,
		span:       spacing * float64(n),
		reposition: reposition,
	}
	for i := range p.zs {
		p.zs[i] = reposition - spacing*float64(i+1)
	}
	return p
}

// OnWrap registers a callback invoked with the slot index each time a member
// teleports to the rear of the ring.
func (p *Pool) OnWrap(fn func(index int)) {
	p.onWrap = fn
}

// Advance moves every member toward the camera by dist. A member crossing
// the reposition plane is moved back by exactly the pool span; subtracting
// the span rather than resetting to an absolute position keeps inter-member
// spacing exact over arbitrarily many laps.
func (p *Pool) Advance(dist float64) {
	for i := range p.zs {
		p.zs[i] += dist
		if p.zs[i] > p.reposition {
			p.zs[i] -= p.span
			if p.onWrap != nil {
				p.onWrap(i)
			}
		}
	}
}

// Len returns the number of members.
func (p *Pool) Len() int {
	return len(p.zs)
}

// Z returns the current z position of slot i.
func (p *Pool) Z(i int) float64 {
	return p.zs[i]
}

// Span is the total loop distance D of the ring.
func (p *Pool) Span() float64 {
	return p.span
}

// Spacing is the distance between adjacent members.
func (p *Pool) Spacing() float64 {
	return p.spacing
}

// Each visits every member in slot order.
func (p *Pool) Each(fn func(i int, z float64)) {
	for i, z := range p.zs {
		fn(i, z)
	}
}
