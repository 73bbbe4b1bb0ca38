// Package model provides the data types shared by every stage of the outline
// extraction pipeline.
//
// The pipeline transforms values of these types strictly forward:
//
//	[]TextFragment -> []MergedLine -> []Heading -> Outline
//
// # Fragments and lines
//
// A [TextFragment] is a positioned run of text with one font, size, and style
// as reported by the extraction layer. The line merger reassembles fragments
// into [MergedLine] values representing visually continuous lines in reading
// order.
//
// # Headings and outlines
//
// A [Heading] pairs a [HeadingLevel] (H1 shallowest through H5 deepest) with
// its text and 1-based page number. An [Outline] is the ordered sequence of
// headings that survive filtering; it serializes as a JSON array of
// {level, text, page} objects.
//
// # Geometry
//
// [Rect] is a corner-form bounding box in a top-left-origin coordinate space,
// with union and containment operations used by the merger.
package model
