// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command snapshot constructs a board, relaxes it for a few dispersion
// steps, and rasterizes face centers and Voronoi cell outlines to an
// SVG file. It is diagnostic tooling, not the (out-of-scope) OpenGL
// renderer: a flat equirectangular projection good enough to eyeball
// whether a change to the core behaves.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r3"
	"github.com/kriulin/geofloes"
)

func main() {
	var (
		n     = flag.Int("n", 500, "number of points")
		steps = flag.Int("steps", 10, "dispersion steps to run before snapshotting")
		seed  = flag.Int64("seed", 0, "random seed")
		out   = flag.String("out", "snapshot.svg", "output SVG path")
		width = flag.Int("width", 1500, "canvas width in pixels")
	)
	flag.Parse()

	board, err := geofloes.NewBoard(*n, geofloes.WithSeed(*seed))
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *steps; i++ {
		if err := board.UpdateDispersion(); err != nil {
			log.Fatal(err)
		}
	}
	if err := board.UpdateGeometryIfNeeded(); err != nil {
		log.Fatal(err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	render(board, svg.New(file), *width)
}

const (
	polygonStyle = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	siteStyle    = "fill:rgb(255,0,0)"
)

func render(board *geofloes.Board, canvas *svg.SVG, width int) {
	height := width / 2
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:rgb(255,255,255)")

	var xPoints, yPoints []int
	for i := 0; i < board.FaceCount(); i++ {
		fv, err := board.FaceVertices(i)
		if err != nil {
			log.Fatal(err)
		}
		xPoints = xPoints[:0]
		yPoints = yPoints[:0]

		sLng := longitude(board.FaceCenter(i))
		draw := true
		for _, v := range fv {
			vertex, err := board.VertexPosition(v)
			if err != nil {
				log.Fatal(err)
			}
			vLng := longitude(vertex)
			if math.Abs(vLng-sLng) > math.Pi {
				draw = false
				break
			}
			x, y := toScreen(vertex, width, height)
			xPoints = append(xPoints, x)
			yPoints = append(yPoints, y)
		}
		if draw {
			canvas.Polygon(xPoints, yPoints, polygonStyle)
		}
	}

	for i := 0; i < board.FaceCount(); i++ {
		x, y := toScreen(board.FaceCenter(i), width, height)
		canvas.Circle(x, y, 3, siteStyle)
	}
	canvas.End()
}

func longitude(p r3.Vector) float64 {
	return math.Atan2(p.Y, p.X)
}

func toScreen(p r3.Vector, width, height int) (int, int) {
	lng := longitude(p)
	lat := math.Asin(clampUnit(p.Z))
	x := (lng + math.Pi) / (2 * math.Pi)
	y := (math.Pi/2 - lat) / math.Pi
	return int(x * float64(width)), int(y * float64(height))
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
