package backtest

import "github.com/rustyeddy/screener/strategies"

// Trim drops every frame missing one of the required indicator fields.
// Indicators only go undefined during warm-up, so in practice this removes
// a leading run of frames.
func Trim(frames []strategies.Frame, required strategies.Field) []strategies.Frame {
	out := make([]strategies.Frame, 0, len(frames))
	for _, f := range frames {
		if f.Has(required) {
			out = append(out, f)
		}
	}
	return out
}
