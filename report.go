package osmtoloop

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Report is the quality summary of one run. Non-fatal conditions accumulate
// here instead of aborting the batch.
type Report struct {
	RoutingErrors    int `json:"routingErrors"`
	GapViolations    int `json:"gapViolations"`
	RoutePoints      int `json:"routePoints"`
	Stops            int `json:"stops"`
	SynthesizedStops int `json:"synthesizedStops"`
	Stubs            int `json:"stubs"`
}

// Clean reports whether the run completed without any quality warnings.
func (r *Report) Clean() bool {
	return r.RoutingErrors == 0 && r.GapViolations == 0 && r.SynthesizedStops == 0
}

// Log writes the summary through the structured logger.
func (r *Report) Log(log *zap.Logger) {
	log.Info("run quality report",
		zap.Int("routingErrors", r.RoutingErrors),
		zap.Int("gapViolations", r.GapViolations),
		zap.Int("routePoints", r.RoutePoints),
		zap.Int("stops", r.Stops),
		zap.Int("synthesizedStops", r.SynthesizedStops),
		zap.Int("stubs", r.Stubs),
		zap.Bool("clean", r.Clean()))
}

// JSON renders the report for the -report CLI flag.
func (r *Report) JSON() []byte {
	b, _ := json.MarshalIndent(r, "", "  ")
	return b
}
