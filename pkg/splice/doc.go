// Package splice replaces the inner content of a marker-bounded region in a
// larger document. Matching is a bounded pattern, not an HTML parse: the
// region runs from the opening marker to the nearest closing marker after it,
// which is only correct when the region holds no nested element of the same
// tag. Splicer keeps that choice swappable.
package splice
