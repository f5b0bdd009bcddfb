package engine

import "github.com/rs/zerolog"

// CutStatistics collects counts for each pruning/cutoff mechanism of one
// searcher.
type CutStatistics struct {
	TTCutoffs         uint64
	NullMoveCutoffs   uint64
	StaticNullCutoffs uint64
	FutilityPrunes    uint64
	BetaCutoffs       uint64
	QStandPatCutoffs  uint64
	QBetaCutoffs      uint64
	QSeePrunes        uint64
	QDeltaPrunes      uint64
}

func (c *CutStatistics) add(o CutStatistics) {
	c.TTCutoffs += o.TTCutoffs
	c.NullMoveCutoffs += o.NullMoveCutoffs
	c.StaticNullCutoffs += o.StaticNullCutoffs
	c.FutilityPrunes += o.FutilityPrunes
	c.BetaCutoffs += o.BetaCutoffs
	c.QStandPatCutoffs += o.QStandPatCutoffs
	c.QBetaCutoffs += o.QBetaCutoffs
	c.QSeePrunes += o.QSeePrunes
	c.QDeltaPrunes += o.QDeltaPrunes
}

// MarshalZerologObject lets the statistics be logged with Object("cuts", s).
func (c CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("tt", c.TTCutoffs).
		Uint64("null", c.NullMoveCutoffs).
		Uint64("rfp", c.StaticNullCutoffs).
		Uint64("futility", c.FutilityPrunes).
		Uint64("beta", c.BetaCutoffs).
		Uint64("q_standpat", c.QStandPatCutoffs).
		Uint64("q_beta", c.QBetaCutoffs).
		Uint64("q_see", c.QSeePrunes).
		Uint64("q_delta", c.QDeltaPrunes)
}
