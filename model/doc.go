// Package model provides the geometric primitives shared by the slidefig
// packages: rectangles in slide coordinates (top-left origin), unit tagging
// for normalized versus absolute coordinates, intersection ratios, and
// aspect-preserving fitting.
package model
