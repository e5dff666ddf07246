package reservation

import (
	"github.com/shopspring/decimal"

	"slot-reservation/internal/domain/resource"
)

type PriceCalculator interface {
	Quote(res *resource.Resource, slot TimeSlot) decimal.NullDecimal
}

// DefaultPriceCalculator bills parking by the hour at the resource's unit
// price. EV charging is billed per kWh delivered, which is unknown up front,
// so EV reservations carry no quote.
type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

func (pc *DefaultPriceCalculator) Quote(res *resource.Resource, slot TimeSlot) decimal.NullDecimal {
	if res.Type() != resource.TypeParking {
		return decimal.NullDecimal{}
	}

	hours := decimal.NewFromFloat(slot.Duration().Hours())
	return decimal.NewNullDecimal(res.UnitPrice().Mul(hours).Round(2))
}
