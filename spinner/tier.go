package spinner

// WinTier classifies a result's magnitude for celebration intensity
type WinTier int

const (
	TierSmall WinTier = iota
	TierBig
	TierMega
)

func (t WinTier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierBig:
		return "big"
	case TierMega:
		return "mega"
	default:
		return "unknown"
	}
}

// Thresholds are the ascending lower bounds of the Big and Mega tiers
type Thresholds struct {
	Big  int `yaml:"big"`
	Mega int `yaml:"mega"`
}

// DefaultThresholds returns the stock tier bounds
func DefaultThresholds() Thresholds {
	return Thresholds{Big: 10000, Mega: 100000}
}

// Classify applies Classify with these thresholds
func (th Thresholds) Classify(value int) WinTier {
	return Classify(value, th.Big, th.Mega)
}

// Classify returns Mega at or above mega, Big at or above big, else Small
func Classify(value, big, mega int) WinTier {
	switch {
	case value >= mega:
		return TierMega
	case value >= big:
		return TierBig
	default:
		return TierSmall
	}
}
