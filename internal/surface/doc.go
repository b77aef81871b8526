// Package surface is the immediate-mode drawing target every scene paints on.
//
// A [Surface] has a logical size and a device pixel ratio; its backing
// store is the logical size scaled by the ratio. Hosts call [Surface.Fit]
// before each frame, then [Surface.Clear], then hand it to a scene.
// Clear also resets the drawing state, so a scene never inherits stroke
// colour, alpha or dash settings from a previous frame.
//
// Filled and stroked shapes go through golang.org/x/image/vector; text uses
// the fixed basicfont face scaled by whole pixels. Every alpha that reaches
// a pixel passes through [Clamp01].
package surface
