/*
Package graph builds an undirected weighted adjacency graph over geographic
nodes from raw OSM ways, and routes a multi-waypoint loop across it.

Ways are filtered to a vehicle-driveable road-class allow-list; every
consecutive node pair of an accepted way contributes two directed edge
records, weighted by great-circle distance and labeled with the way's street
name. Parallel ways between the same node pair are kept as separate records.

Routing snaps each caller waypoint to its nearest connected node via a
quadtree index, then runs Dijkstra between consecutive waypoint pairs,
wrapping around to close the loop. A pair with no path is a non-fatal error:
it is logged, counted, and its contribution omitted, and routing continues
with the remaining pairs.
*/
package graph
