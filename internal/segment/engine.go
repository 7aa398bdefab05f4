package segment

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// ErrSessionNotBound is returned by GenerateMask before any image is bound.
var ErrSessionNotBound = errors.New("segment: no image bound, call BindImage first")

// Engine runs the full refinement pipeline over a candidate provider:
// prompt normalization, candidate selection, color/edge gated refinement,
// morphological cleanup and connectivity filtering.
//
// An Engine is safe for concurrent use; calls are serialized because the
// provider itself is sequential.
type Engine struct {
	mu       sync.Mutex
	provider CandidateProvider
	params   Params
	scorer   CandidateScorer
	sink     TraceSink

	session  *Session
	versions uint64
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithParams overrides the default tuned thresholds.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithScorer replaces the door/window classifier.
func WithScorer(s CandidateScorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// WithTraceSink installs a sink for pipeline stage events.
func WithTraceSink(t TraceSink) Option {
	return func(e *Engine) { e.sink = t }
}

// NewEngine builds an engine around a candidate provider.
func NewEngine(provider CandidateProvider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		params:   DefaultParams(),
		scorer:   AdditiveDoorScorer{},
		sink:     NopSink{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// BindImage prepares the engine for prompts against img: the provider computes
// its embeddings and the session precomputes the color and edge feature
// buffers. Binding an image whose pixels are identical to the current one is
// a no-op that returns the existing session, skipping the expensive provider
// call. The previous session is closed on replacement.
func (e *Engine) BindImage(img image.Image) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := newSession(img, e.versions+1, e.params)
	if err != nil {
		return nil, err
	}

	if e.session != nil && e.session.sameImage(candidate.raw) {
		candidate.Close()
		e.sink.SessionBound(e.session.version, e.session.width, e.session.height, true)
		return e.session, nil
	}

	if err := e.provider.SetImage(img); err != nil {
		candidate.Close()
		return nil, fmt.Errorf("provider rejected image: %w", err)
	}

	if e.session != nil {
		e.session.Close()
	}
	e.versions++
	e.session = candidate
	e.sink.SessionBound(candidate.version, candidate.width, candidate.height, false)
	return candidate, nil
}

// Session returns the currently bound session, or nil.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// GenerateMask produces a refined mask for a prompt. It returns (nil, nil)
// when the provider yields nothing usable for the prompt, so callers can
// distinguish "no selection there" from an actual failure.
func (e *Engine) GenerateMask(prompt Prompt, opts RefinementOptions) (*Mask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return nil, ErrSessionNotBound
	}
	p := e.params

	pr, err := normalizePrompt(prompt, s.width, s.height)
	if err != nil {
		return nil, err
	}

	masks, scores, err := e.provider.Predict(pr.points, pr.labels, pr.box)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	set, err := NormalizeCandidates(masks, scores, s.width, s.height)
	if err != nil {
		return nil, err
	}
	if set.Empty() {
		return nil, nil
	}

	sel := selectCandidate(set, pr, opts, p, e.scorer)
	e.sink.CandidateChosen(sel.index, sel.doorScore, sel.merged, sel.mask.Area())

	if !opts.Cleanup {
		return sel.mask, nil
	}
	if !pr.hasRef {
		// Background-only prompt: no point to anchor seed sampling or
		// connectivity on, so the raw candidate is the best answer.
		return sel.mask, nil
	}

	res := refineMask(s, sel.mask, pr, opts, p, e.sink)
	mask := res.mask

	// Gating that strips almost the whole candidate means the seed color was
	// wrong (a click on a picture frame inside the wall, a box over glass).
	if selArea := sel.mask.Area(); selArea > 0 {
		kept := float64(mask.Area()) / float64(selArea)
		if kept < p.RefineKeepMinFraction {
			e.sink.RefineFallback("gating removed most of the candidate", kept)
			mask = sel.mask
		}
	}

	if (opts.Level == LevelWall && !res.smallObject) || pr.isBox {
		mask = applyCleanup(s, mask, opts.WallClick, p)
	}

	if mask.Area() <= p.MinMaskAreaPixels {
		mask = sel.mask
	}

	mask = filterComponents(mask, pr, opts.WallClick, p, e.sink)
	if mask.Area() == 0 {
		return nil, nil
	}
	return mask, nil
}
