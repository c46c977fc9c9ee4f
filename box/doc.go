// Package box implements a box-packing layout engine.
//
// A layout is a tree of [Box] containers. Each box lays its items out along
// one [Orientation]; an item is either a leaf [Widget] or a nested box, and
// carries its own size request, padding and per-axis [Policy].
//
// The main entry point is [Resize], which runs a measure pass over the tree,
// derives scale ratios for the expandable part of each box, and then walks
// the tree again handing final geometry to a [Placer].
//
// The tree is not safe for concurrent use. Callers that share a tree between
// goroutines serialize access at the root (see package window).
package box
