/*
Package route transforms the routed geographic node sequence into the final
loop polyline and its attached artifacts.

The stages are pure functions applied in a fixed order: project into a
centroid-anchored scaled planar frame, remove doubling-back vertices left by
divided carriageways and roundabouts, collapse near-duplicate points,
resample to uniform arc-length spacing, and close the loop. Stop matching,
junction projection and side-road stub derivation all share the same planar
transform so every emitted artifact lives in one coordinate frame.

Distances in this package are scaled planar units unless a name says meters.
*/
package route
