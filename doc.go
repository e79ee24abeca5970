/*
go-houghlite extracts particle track candidates from 2D Hough transform
accumulators produced from detector hit data.  It finds local maxima
("peaks") in the accumulator, partitions true tracks into angular slices
using configurable easing functions, matches peaks against the true tracks
that produced them, and emits fixed size labeled sub-grids ("squares")
suitable for training supervised track reconstruction models.

The root package holds the domain types shared across the pipeline: the
Accumulator grid, Track and TrainingSquare containers, the analysis
parameters and the PDG particle charge lookup.  The algorithmic stages live
in the peaks, slicer and matcher subpackages, with an orchestration loop in
pipeline and visualisation helpers in render.

See example code and usage in the example subdirectory.
*/
package houghlite
