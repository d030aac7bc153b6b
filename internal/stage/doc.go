// Package stage lays out a band's equipment on an A4 stage plot.
//
// The stage is drawn lying on its side: the x axis runs from the back wall
// towards the audience and the y axis from stage left to stage right. Layout
// is a pure function of an equipment snapshot and a set of icon glyphs; it
// never fails on sparse or dangling data.
package stage
