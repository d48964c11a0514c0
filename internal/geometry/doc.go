// Package geometry provides the planar shapes used as contact uncertainty
// regions: an oriented Ellipse and a Circle, both answering containment and
// edge-distance queries against a point.
//
// Angles are radians measured anticlockwise from the +x axis.
package geometry
