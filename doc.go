/*
Package lowpoly converts images into low-poly art using delaunay triangulation.

Points are placed on the source image, either interactively or seeded from the
image edges, and triangulated. Every triangle is filled with the average color
of the pixels it covers. The resulting mesh can be drawn as a raster image or
exported as SVG.

The package provides a command line utility with an interactive viewer.
Check the supported commands by typing:

	$ lowpoly --help

Example to triangulate an image and export the result as SVG:

	package main

	import (
		"log"

		"github.com/esimov/lowpoly"
	)

	func main() {
		img, err := lowpoly.Open("input.jpg")
		if err != nil {
			log.Fatal(err)
		}
		s := lowpoly.NewSession(img, lowpoly.SessionOptions{Output: "output.svg"})

		p := &lowpoly.Processor{
			BlurRadius:      2,
			SobelThreshold:  10,
			PointsThreshold: 20,
			MaxPoints:       2500,
		}
		p.Process(s)

		if _, err := s.Export(""); err != nil {
			log.Fatal(err)
		}
	}

Interactive front ends feed a Session with events and call Update once per frame:

	s.Dispatch(lowpoly.Click{X: 120, Y: 80})
	if err := s.Update(); err != nil {
		// only exports can fail
	}
	r := &lowpoly.Renderer{}
	r.Draw(frame, s)
*/
package lowpoly
