// Package raster provides the pixel-array primitives used by the
// segmentation pipeline: floating-point grids, boolean masks, integer
// label maps, and the morphological operations that connect them.
//
// # Grids and Maps
//
// Three array types share the same row-major layout:
//
//   - [Grid] - a height×width float64 image, typically probabilities in [0,1]
//   - [BitMap] - a height×width boolean mask
//   - [LabelMap] - a height×width integer map where 0 is background and
//     positive values identify regions
//
// [Volume] adds a channel dimension for multi-class probability arrays.
//
// # Morphology
//
// The package implements the label-map operations the segmenters are
// built from:
//
//   - [Label] - 4-connected component labeling
//   - [SpreadLabels] - nearest-label assignment via a Euclidean distance
//     transform, with a distance cap
//   - [PruneSmallRegions] - removal of components at or below a size cutoff
//   - [ReconcileMarkers] - suppression of regions not confirmed by a marker
//   - [BitMap.Dilate], [BitMap.Erode], [BitMap.Close] - rectangular-window
//     morphology on masks
//   - [MaxFilter], [MinFilter] - rectangular-window rank filters on label maps
package raster
