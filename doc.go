/*
Package pixpaint is a small raster paint engine built around a 4-connected
flood fill. It draws with line, rectangle, circle, triangle, pencil, brush,
eraser and paint bucket tools on an in-memory canvas, keeps a bounded undo
history and exports the result as PNG, JPEG or BMP.

The package provides a command line interface which paints images headlessly
or opens a paint window. To check the supported commands type:

	$ pixpaint --help

The flood fill can be used on its own against any Surface:

	package main

	import (
		"image"
		"image/color"

		"github.com/esimov/pixpaint"
	)

	func main() {
		c := pixpaint.NewCanvas(100, 100, color.White)
		if err := pixpaint.Fill(c, image.Pt(10, 10), "#ff0000"); err != nil {
			// the color could not be parsed, the canvas is untouched
		}
	}

Interactive drawing goes through a Session:

	s, _ := pixpaint.NewSession(c, pixpaint.WithTool("rectangle"), pixpaint.WithColor("#0000ff"))
	s.PointerDown(image.Pt(10, 10))
	s.PointerMove(image.Pt(60, 40))
	s.PointerUp()
	s.Undo()
*/
package pixpaint
