package mesh

import "fmt"

// IndexTriangle addresses three nodes of a node array. The winding order
// is significant: counter-clockwise seen from outside is outward facing.
type IndexTriangle struct {
	I, J, K int
}

// Offset shifts all three indices by n.
func (t IndexTriangle) Offset(n int) IndexTriangle {
	return IndexTriangle{t.I + n, t.J + n, t.K + n}
}

// InvertRotation swaps J and K, flipping the facing.
func (t *IndexTriangle) InvertRotation() {
	t.J, t.K = t.K, t.J
}

// Inverted returns a copy with the facing flipped.
func (t IndexTriangle) Inverted() IndexTriangle {
	t.InvertRotation()
	return t
}

func (t IndexTriangle) Indices() [3]int { return [3]int{t.I, t.J, t.K} }

func (t IndexTriangle) MaxIndex() int {
	return max(t.I, t.J, t.K)
}

func (t IndexTriangle) MinIndex() int {
	return min(t.I, t.J, t.K)
}

func (t IndexTriangle) String() string {
	return fmt.Sprintf("%d %d %d", t.I, t.J, t.K)
}
