package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// EMA is an exponential moving average with smoothing span.
// alpha = 2/(span+1), matching pandas ewm(span, adjust=False).
// It is a building block of MACD rather than a pipeline indicator.
type EMA struct {
	span  int
	alpha float64
}

// NewEMA creates an EMA with the given span.
func NewEMA(span int) (*EMA, error) {
	if span <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "span must be a positive integer, got %d", span)
	}

	return &EMA{
		span:  span,
		alpha: 2.0 / float64(span+1),
	}, nil
}

// Span returns the smoothing span.
func (e *EMA) Span() int {
	return e.span
}

// Alpha returns the smoothing weight of the current input.
func (e *EMA) Alpha() float64 {
	return e.alpha
}

// Next returns the average after observing x. An undefined prev seeds the
// average with x, so there is no warm-up gap.
//
// prev + alpha*(x-prev) equals alpha*x + (1-alpha)*prev and keeps a constant
// input exactly constant.
func (e *EMA) Next(prev types.Value, x float64) types.Value {
	if prev.IsNone() {
		return types.Defined(x)
	}

	p := prev.Unwrap()

	return types.Defined(p + e.alpha*(x-p))
}
