// Package outline reconstructs a document's heading hierarchy from
// positioned text fragments.
//
// The package is organized as a four-stage pipeline. Each stage is an
// independent component with its own configuration, so callers can run the
// whole pipeline or any slice of it.
//
// # Merging
//
// The [Merger] reassembles raw fragments into logical lines in reading
// order:
//
//	merger := outline.NewMerger()
//	lines := merger.Merge(fragments)
//
// Fragments merge into one line when they share a page, sit within a small
// vertical tolerance, leave at most a small horizontal gap, and use the same
// font size, weight, and family.
//
// # Font Profiling
//
// The [Profiler] derives the document's body text size and a ladder of
// heading sizes from line statistics:
//
//	profiler := outline.NewProfiler()
//	profile, err := profiler.Profile(lines)
//
// The most frequent size above a noise floor becomes the body size; larger
// sizes map to heading levels in descending order. [ErrNoBodySize] signals a
// document with no usable text.
//
// # Classification
//
// The [Classifier] runs each line through an ordered chain of named rules.
// The first rule with an opinion decides:
//
//   - noise: rejects page numbers, legal boilerplate, and tiny lines
//   - numbering: classifies lines opening with an outline-numbering token
//   - typography: classifies on font size and weight alone
//
// Accepted candidates then pass shared filters (left edge, caption labels,
// length). [ParseNumbering] exposes the numbering grammar directly.
//
// # Hierarchy Filtering
//
// The [Filter] folds candidates into the final outline, dropping duplicates,
// fragments of the previous heading, cover-page boilerplate, and short
// residue. Per-document [Rules], loaded from YAML with [LoadRules], supply
// an override table for known misclassifications.
//
// # Export
//
// The [Exporter] writes an outline as JSON, Markdown, or an HTML nav
// element.
package outline
