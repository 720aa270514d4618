package journal

// Nop is a Journal that records nothing.
type Nop struct{}

func (Nop) RecordSignal(SignalRecord) error  { return nil }
func (Nop) RecordTrade(TradeRecord) error    { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                     { return nil }
