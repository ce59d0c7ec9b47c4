package backtest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/screener/indicators"
	"github.com/rustyeddy/screener/strategies"
)

func TestErrorCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind error
		code string
	}{
		{ErrInsufficientData, "insufficient_data"},
		{ErrUnknownStrategy, "unknown_strategy"},
		{ErrInvalidInput, "invalid_input"},
		{errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		err := failf(tt.kind, "detail %d", 7)
		assert.Equal(t, "detail 7", err.Error())
		assert.ErrorIs(t, err, tt.kind)
		assert.Equal(t, tt.code, ErrorCode(err))

		// survives wrapping
		wrapped := fmt.Errorf("api: %w", err)
		assert.Equal(t, tt.code, ErrorCode(wrapped))
	}
	assert.Equal(t, "internal", ErrorCode(errors.New("plain")))
}

func TestTrim(t *testing.T) {
	t.Parallel()

	frames := framesOf(1, 2, 3, 4)
	frames[1].MAFast = indicators.Some(1)
	frames[2].MAFast = indicators.Some(2)
	frames[2].MASlow = indicators.Some(2)
	frames[3].MAFast = indicators.Some(3)
	frames[3].MASlow = indicators.Some(3)

	got := Trim(frames, strategies.FieldMAFast|strategies.FieldMASlow)
	assert.Len(t, got, 2)
	assert.Equal(t, 3.0, got[0].Close)

	assert.Len(t, Trim(frames, 0), 4)
	assert.Empty(t, Trim(frames, strategies.FieldRSI))
}
