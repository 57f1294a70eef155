/*
Package overpass fetches the raw street-network dataset for a bounding box
from an Overpass-style query service.

The package covers three concerns:

  - Building the declarative query selecting driveable ways and transit stop
    nodes within the region (BuildQuery).
  - Fetching the response over HTTP with a bounded retry budget for
    rate-limit and gateway-timeout responses (Client).
  - The cache-or-fetch contract (Source / CachedSource): a snapshot of the
    most recent response is kept on disk, and its presence short-circuits the
    network entirely on subsequent runs. Tests substitute their own Source
    with fixture data.

The decoded dataset is the paulmach/osm object model; everything downstream
works from osm.Nodes and osm.Ways.
*/
package overpass
