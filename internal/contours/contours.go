package contours

import (
	"image"
	"image/color"
)

// Contour is one 8-connected group of edge pixels.
type Contour struct {
	// Points lists every edge pixel in the group, in discovery order.
	Points []image.Point

	// Bounds is the smallest rectangle containing all Points
	// (Max is exclusive).
	Bounds image.Rectangle
}

// Len returns the number of pixels in the contour.
func (c Contour) Len() int {
	return len(c.Points)
}

// Find returns the contours of an edge map.
//
// Groups smaller than minPoints pixels are dropped as noise; pass 1 to keep
// everything. Coordinates are relative to edges.Bounds().Min.
func Find(edges *image.Gray, minPoints int) []Contour {
	b := edges.Bounds()
	width, height := b.Dx(), b.Dy()

	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !isEdge(edges, x, y) {
				continue
			}
			c := trace(edges, visited, x, y)
			if len(c.Points) >= minPoints {
				contours = append(contours, c)
			}
		}
	}

	return contours
}

// trace performs an iterative flood fill over edge pixels starting at
// (startX, startY). Stack-based so large contours cannot overflow the
// goroutine stack.
func trace(edges *image.Gray, visited []bool, startX, startY int) Contour {
	b := edges.Bounds()
	width, height := b.Dx(), b.Dy()

	c := Contour{Bounds: image.Rect(startX, startY, startX+1, startY+1)}
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] || !isEdge(edges, p.X, p.Y) {
			continue
		}

		visited[idx] = true
		c.Points = append(c.Points, p)
		c.Bounds = c.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return c
}

// FillMask returns an alpha mask, with edges' bounds moved to the origin,
// that is opaque on edge pixels and on every pixel enclosed by edges.
//
// Background is found by flooding 4-connected non-edge pixels inward from
// the image border; 4-connectivity means a diagonal step cannot leak through
// an 8-connected edge line.
func FillMask(edges *image.Gray) *image.Alpha {
	b := edges.Bounds()
	width, height := b.Dx(), b.Dy()

	outside := make([]bool, width*height)
	stack := make([]image.Point, 0, 2*(width+height))

	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		idx := y*width + x
		if outside[idx] || isEdge(edges, x, y) {
			return
		}
		outside[idx] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !outside[y*width+x] {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// isEdge reports whether the pixel at (x, y), relative to the image origin,
// is set in the edge map.
func isEdge(edges *image.Gray, x, y int) bool {
	b := edges.Bounds()
	return edges.GrayAt(x+b.Min.X, y+b.Min.Y).Y != 0
}
