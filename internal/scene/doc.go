// Package scene is a small vector scene graph with SVG and PNG renderers.
//
// A Scene is a list of nodes (rects, lines, polylines, cubic curves, polygons,
// text, icons and label chips) in view units. Every node belongs to a Layer
// and Nodes returns them layer by layer, so a layout may add items in any
// order and still paint cables beneath icons and drum mics on top.
package scene
