package mock

import (
	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/snapp-incubator/fetchmock/internal/logging"
)

// Resolver picks the descriptor serving an observed request.
type Resolver struct {
	Matcher  Matcher
	Registry *Registry
	// Debug enables warnings for unmatched requests and exhausted descriptors.
	Debug bool
}

// NewResolver creates a Resolver over reg.
func NewResolver(m Matcher, reg *Registry) *Resolver {
	return &Resolver{Matcher: m, Registry: reg}
}

// Resolve selects the first matching descriptor in declaration order, consumes
// its next slot if it has multiple responses, and records the request. The
// selection and the consumption happen under the registry lock, so concurrent
// requests never share a slot. Resolve never fails.
func (r *Resolver) Resolve(req Request) Outcome {
	reg := r.Registry

	reg.mu.Lock()
	o := r.resolveLocked(req)
	reg.recordLocked(req, o)

	var nearMiss *Descriptor
	if r.Debug && o.Kind == Unmatched {
		nearMiss = r.nearMissLocked(req)
	}
	reg.mu.Unlock()

	if r.Debug {
		r.diagnose(req, o, nearMiss)
	}

	return o
}

func (r *Resolver) resolveLocked(req Request) Outcome {
	reg := r.Registry

	for i, d := range reg.descriptors {
		if !r.Matcher.Matches(req, d) {
			continue
		}

		if len(d.MultipleResponses) == 0 {
			reg.utilized[i] = true
			return Outcome{Kind: Matched, Index: i, Slot: -1, Descriptor: d, Response: d.response()}
		}

		for s, done := range reg.returned[i] {
			if done {
				continue
			}

			reg.returned[i][s] = true
			reg.utilized[i] = true
			return Outcome{Kind: MatchedMultiple, Index: i, Slot: s, Descriptor: d, Response: d.slot(s)}
		}

		return Outcome{Kind: ExhaustedMultiple, Index: i, Slot: -1, Descriptor: d, Response: DefaultResponse()}
	}

	return unmatched()
}

// nearMissLocked returns the descriptor whose URL is the closest to the request's.
func (r *Resolver) nearMissLocked(req Request) *Descriptor {
	var (
		best     *Descriptor
		bestDist = -1
	)

	for i, d := range r.Registry.descriptors {
		observed := r.Matcher.KeyForRequest(req, d).URL
		dist := levenshtein.ComputeDistance(observed, r.Matcher.NormalizedURL(d))
		if d.NormalizedMethod() != normalizeMethod(req.Method) {
			dist++
		}

		if bestDist < 0 || dist < bestDist {
			best, bestDist = &r.Registry.descriptors[i], dist
		}
	}

	if best == nil {
		return nil
	}
	c := *best
	return &c
}

func (r *Resolver) diagnose(req Request, o Outcome, nearMiss *Descriptor) {
	switch o.Kind {
	case Unmatched:
		fields := []zap.Field{
			zap.String("method", normalizeMethod(req.Method)),
			zap.String("url", req.URL),
		}
		if req.Body != nil {
			fields = append(fields, zap.ByteString("body", req.Body))
		}
		if nearMiss != nil {
			fields = append(fields,
				zap.String("closest_mock_method", nearMiss.NormalizedMethod()),
				zap.String("closest_mock_url", r.Matcher.NormalizedURL(*nearMiss)),
			)
		}
		logging.L.Warn("request is missing a mocked response", fields...)
	case ExhaustedMultiple:
		logging.L.Warn("all multiple responses of the mock have been returned",
			zap.String("method", o.Descriptor.NormalizedMethod()),
			zap.String("path", o.Descriptor.Path),
			zap.Int("responses", len(o.Descriptor.MultipleResponses)),
		)
	}
}
