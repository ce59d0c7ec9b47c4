package strategies

import (
	"fmt"
	"math"
)

// Params carries every recognized strategy option. Each strategy reads only
// its own fields.
type Params struct {
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold"`
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought"`

	MACDFast   int `json:"macd_fast" yaml:"macd_fast"`
	MACDSlow   int `json:"macd_slow" yaml:"macd_slow"`
	MACDSignal int `json:"macd_signal" yaml:"macd_signal"`

	BBPeriod int     `json:"bb_period" yaml:"bb_period"`
	BBStd    float64 `json:"bb_std" yaml:"bb_std"`

	MAFast int `json:"ma_fast" yaml:"ma_fast"`
	MASlow int `json:"ma_slow" yaml:"ma_slow"`
}

// DefaultParams returns the stock settings for all four strategies.
func DefaultParams() Params {
	return Params{
		RSIOversold:   30,
		RSIOverbought: 70,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
		BBPeriod:      20,
		BBStd:         2.0,
		MAFast:        10,
		MASlow:        50,
	}
}

// WithDefaults fills zero-valued fields from DefaultParams.
func (p Params) WithDefaults() Params {
	return p.Merge(DefaultParams())
}

// Merge fills zero-valued fields of p from def.
func (p Params) Merge(def Params) Params {
	if p.RSIOversold == 0 {
		p.RSIOversold = def.RSIOversold
	}
	if p.RSIOverbought == 0 {
		p.RSIOverbought = def.RSIOverbought
	}
	if p.MACDFast == 0 {
		p.MACDFast = def.MACDFast
	}
	if p.MACDSlow == 0 {
		p.MACDSlow = def.MACDSlow
	}
	if p.MACDSignal == 0 {
		p.MACDSignal = def.MACDSignal
	}
	if p.BBPeriod == 0 {
		p.BBPeriod = def.BBPeriod
	}
	if p.BBStd == 0 {
		p.BBStd = def.BBStd
	}
	if p.MAFast == 0 {
		p.MAFast = def.MAFast
	}
	if p.MASlow == 0 {
		p.MASlow = def.MASlow
	}
	return p
}

// Validate checks the fields the given strategy reads.
func (p Params) Validate(k Kind) error {
	switch k {
	case RSISMA:
		if !finite(p.RSIOversold) || !finite(p.RSIOverbought) {
			return fmt.Errorf("rsi thresholds must be finite numbers")
		}
		if p.RSIOversold < 0 || p.RSIOverbought > 100 {
			return fmt.Errorf("rsi thresholds must be within 0..100")
		}
		if p.RSIOversold >= p.RSIOverbought {
			return fmt.Errorf("rsi_oversold (%.1f) must be below rsi_overbought (%.1f)", p.RSIOversold, p.RSIOverbought)
		}
	case MACDCrossover:
		if p.MACDFast <= 0 || p.MACDSlow <= 0 || p.MACDSignal <= 0 {
			return fmt.Errorf("macd periods must be positive")
		}
		if p.MACDFast >= p.MACDSlow {
			return fmt.Errorf("macd_fast (%d) must be below macd_slow (%d)", p.MACDFast, p.MACDSlow)
		}
	case Bollinger:
		if p.BBPeriod < 2 {
			return fmt.Errorf("bb_period must be at least 2, got %d", p.BBPeriod)
		}
		if !finite(p.BBStd) || p.BBStd <= 0 {
			return fmt.Errorf("bb_std must be positive, got %.2f", p.BBStd)
		}
	case MACrossover:
		if p.MAFast <= 0 || p.MASlow <= 0 {
			return fmt.Errorf("ma periods must be positive")
		}
		if p.MAFast >= p.MASlow {
			return fmt.Errorf("ma_fast (%d) must be below ma_slow (%d)", p.MAFast, p.MASlow)
		}
	default:
		return fmt.Errorf("unknown strategy kind %d", int(k))
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
