// Package geom defines the planar and spatial value types used by the
// floor plan model and the mesh generator: points, directed segments,
// axis-aligned rectangles and orientation triangles, all compared under
// an epsilon tolerance.
package geom
