// Package csg implements constructive solid geometry on triangle meshes using
// binary space partition trees. A closed mesh with consistent outward winding
// is treated as a solid; Union, Intersect and Subtract combine two such solids
// and return the boundary triangles of the result.
//
// Everything in this package is single-threaded and allocation-only: no I/O,
// no logging, no shared state. Degenerate input degrades silently into fewer
// output triangles.
package csg
