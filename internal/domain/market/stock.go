package market

import (
	"errors"
	"fmt"
)

// Market enumerates the exchanges a stock can be listed on.
type Market string

const (
	MarketKOSPI   Market = "KOSPI"
	MarketKOSDAQ  Market = "KOSDAQ"
	MarketUnknown Market = "UNKNOWN"
)

// ParseMarket maps a feed market label to a Market, defaulting to
// MarketUnknown for anything unrecognized.
func ParseMarket(s string) Market {
	switch s {
	case string(MarketKOSPI):
		return MarketKOSPI
	case string(MarketKOSDAQ):
		return MarketKOSDAQ
	default:
		return MarketUnknown
	}
}

// Stock is immutable reference data for one listed stock.
type Stock struct {
	Code   string
	Name   string
	Market Market
}

// ValidationError collects every reason a record failed validation.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("stock validation failed: %v", e.Reasons)
}

// IsValidationError reports whether err is a stock validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks basic integrity of the reference record.
func (s Stock) Validate() error {
	var reasons []string

	if s.Code == "" {
		reasons = append(reasons, "code is required")
	}
	if s.Name == "" {
		reasons = append(reasons, "name is required")
	}

	switch s.Market {
	case MarketKOSPI, MarketKOSDAQ, MarketUnknown:
		// ok
	default:
		reasons = append(reasons, "unsupported market")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}
