package segment

import (
	"go.uber.org/zap"
)

// TraceSink receives structured stage events from the pipeline. Sinks replace
// ad-hoc debug printing: every decision that determines the output mask is
// observable without touching the algorithms.
type TraceSink interface {
	// SessionBound fires after BindImage, with reused=true when the image
	// was bit-identical to the already bound one.
	SessionBound(version uint64, width, height int, reused bool)
	// CandidateChosen reports the selected candidate. index is -1 when
	// several candidates were merged; merged is the number of masks merged;
	// doorScore is the door/window classifier result (-1 when not scored).
	CandidateChosen(index, doorScore, merged int, area int)
	// StrategyChosen reports the refinement branch taken.
	StrategyChosen(s Strategy, smallObject bool)
	// RefineFallback fires when a gated mask was discarded for removing too
	// much of the candidate. keptFraction is the fraction that survived.
	RefineFallback(reason string, keptFraction float64)
	// ComponentsFiltered reports connectivity filtering results.
	ComponentsFiltered(kept, dropped int)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) SessionBound(uint64, int, int, bool) {}
func (NopSink) CandidateChosen(int, int, int, int)  {}
func (NopSink) StrategyChosen(Strategy, bool)       {}
func (NopSink) RefineFallback(string, float64)      {}
func (NopSink) ComponentsFiltered(int, int)         {}

// ZapSink logs trace events through a zap logger at debug level.
type ZapSink struct {
	Log *zap.Logger
}

// NewZapSink wraps a logger; a nil logger falls back to zap.NewNop.
func NewZapSink(log *zap.Logger) *ZapSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapSink{Log: log}
}

func (z *ZapSink) SessionBound(version uint64, width, height int, reused bool) {
	z.Log.Debug("session bound",
		zap.Uint64("version", version),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("reused", reused))
}

func (z *ZapSink) CandidateChosen(index, doorScore, merged, area int) {
	z.Log.Debug("candidate chosen",
		zap.Int("index", index),
		zap.Int("door_score", doorScore),
		zap.Int("merged", merged),
		zap.Int("area", area))
}

func (z *ZapSink) StrategyChosen(s Strategy, smallObject bool) {
	z.Log.Debug("strategy chosen",
		zap.Stringer("strategy", s),
		zap.Bool("small_object", smallObject))
}

func (z *ZapSink) RefineFallback(reason string, keptFraction float64) {
	z.Log.Debug("refinement discarded",
		zap.String("reason", reason),
		zap.Float64("kept_fraction", keptFraction))
}

func (z *ZapSink) ComponentsFiltered(kept, dropped int) {
	z.Log.Debug("components filtered",
		zap.Int("kept", kept),
		zap.Int("dropped", dropped))
}
