// Package strategies decides BUY/SELL/HOLD for each bar under one of four
// fixed rule sets.
//
// The set is closed: Kind enumerates it and a table maps each kind to the
// indicators it needs and the function that reads them.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/screener/market"
)

// Kind selects a strategy.
type Kind int

const (
	RSISMA Kind = iota + 1
	MACDCrossover
	Bollinger
	MACrossover
)

// Signal is the advisory output for one bar. The simulator decides whether
// it can act on it.
type Signal struct {
	Buy   bool
	Sell  bool
	Label string
}

// SignalFunc evaluates the current frame. prev is the frame before it, nil
// on the first frame of the run.
type SignalFunc func(prev *Frame, cur Frame) Signal

// Info is the static description of a strategy used to render
// configuration forms.
type Info struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

type entry struct {
	info     Info
	required Field
	attach   func(fs []Frame, closes []float64, p Params)
	signal   func(prev *Frame, cur Frame, p Params) Signal
	title    func(p Params) string
}

var table = map[Kind]entry{
	RSISMA: {
		info: Info{
			ID:          "rsi_sma",
			Name:        "RSI + SMA50",
			Description: "Buy when RSI is oversold and price > SMA50, sell when RSI overbought",
			Params:      []string{"rsi_oversold", "rsi_overbought"},
		},
		required: FieldRSI | FieldSMA50,
		attach:   attachRSISMA,
		signal:   rsiSMASignal,
		title:    func(Params) string { return "RSI + SMA50" },
	},
	MACDCrossover: {
		info: Info{
			ID:          "macd",
			Name:        "MACD Crossover",
			Description: "Buy on bullish MACD histogram crossover, sell on bearish crossover",
			Params:      []string{"macd_fast", "macd_slow", "macd_signal"},
		},
		required: FieldMACD | FieldMACDSignal | FieldMACDHist,
		attach:   attachMACD,
		signal:   macdSignal,
		title: func(p Params) string {
			return fmt.Sprintf("MACD (%d,%d,%d)", p.MACDFast, p.MACDSlow, p.MACDSignal)
		},
	},
	Bollinger: {
		info: Info{
			ID:          "bollinger",
			Name:        "Bollinger Bands",
			Description: "Buy when price touches lower band, sell at upper band",
			Params:      []string{"bb_period", "bb_std"},
		},
		required: FieldBBMid | FieldBBUpper | FieldBBLower,
		attach:   attachBollinger,
		signal:   bollingerSignal,
		title: func(p Params) string {
			return fmt.Sprintf("Bollinger Bands (%d, %.1fσ)", p.BBPeriod, p.BBStd)
		},
	},
	MACrossover: {
		info: Info{
			ID:          "ma_crossover",
			Name:        "Moving Average Crossover",
			Description: "Golden cross buy, death cross sell",
			Params:      []string{"ma_fast", "ma_slow"},
		},
		required: FieldMAFast | FieldMASlow,
		attach:   attachMACrossover,
		signal:   maCrossSignal,
		title: func(p Params) string {
			return fmt.Sprintf("MA Crossover (%d/%d)", p.MAFast, p.MASlow)
		},
	},
}

// Kinds lists every strategy in display order.
func Kinds() []Kind {
	return []Kind{RSISMA, MACDCrossover, Bollinger, MACrossover}
}

// ParseKind resolves a strategy id such as "rsi_sma". Matching ignores case
// and surrounding space.
func ParseKind(id string) (Kind, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, k := range Kinds() {
		if table[k].info.ID == id {
			return k, true
		}
	}
	return 0, false
}

// IDs lists the recognized strategy ids.
func IDs() []string {
	out := make([]string, 0, len(table))
	for _, k := range Kinds() {
		out = append(out, table[k].info.ID)
	}
	return out
}

// List returns the metadata of every strategy.
func List() []Info {
	out := make([]Info, 0, len(table))
	for _, k := range Kinds() {
		info := table[k].info
		info.Params = append([]string(nil), info.Params...)
		out = append(out, info)
	}
	return out
}

func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
}

// ID returns the wire identifier, e.g. "macd".
func (k Kind) ID() string {
	if s, ok := table[k]; ok {
		return s.info.ID
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) String() string { return k.ID() }

// Info returns the static metadata of k.
func (k Kind) Info() Info { return table[k].info }

// Required returns the indicator fields a frame must carry before k can
// evaluate it.
func (k Kind) Required() Field { return table[k].required }

// Title is the human-readable name including the parameters in force.
func (k Kind) Title(p Params) string {
	s, ok := table[k]
	if !ok {
		return "Unknown"
	}
	return s.title(p)
}

// Attach computes the indicators k needs over s and returns one frame per
// bar. Leading frames stay partially undefined until every indicator has
// warmed up.
func (k Kind) Attach(s market.Series, p Params) []Frame {
	fs := NewFrames(s)
	if sp, ok := table[k]; ok {
		sp.attach(fs, s.Closes(), p)
	}
	return fs
}

// Bind fixes the parameters and returns the per-bar signal function.
func (k Kind) Bind(p Params) SignalFunc {
	sp, ok := table[k]
	if !ok {
		return func(*Frame, Frame) Signal { return Signal{} }
	}
	return func(prev *Frame, cur Frame) Signal {
		return sp.signal(prev, cur, p)
	}
}
