// Package viz draws scene frames and widgets in the terminal.
//
//   - [Canvas]: Braille dot grid with per-cell colour, filled from a
//     rendered surface by [Canvas.FromImage]
//   - [Theme]: five colour schemes; [Theme.Adapt] maps paper-coloured scene
//     ink onto dark backgrounds
//   - [Styles] and the widgets built on them: sliders, sparklines, a phase
//     dial and gradient titles
package viz
