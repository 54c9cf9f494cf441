// Package contours groups edge pixels into contours and computes the region
// they enclose.
//
// The input is always a binary edge map (*image.Gray) where any non-zero
// pixel is an edge. Connectivity is 8-connected (diagonals included).
//
// FillMask reproduces what drawing every contour of an edge map with a
// filled brush produces: each edge pixel plus every pixel that cannot reach
// the image border without crossing an edge.
package contours
