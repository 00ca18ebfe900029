package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jgoulah/gascalc/pkg/models"
)

// billingCode is the fixed prefix the billing system expects on every line
const billingCode = "402400+552010"

// BillingText renders one day's usage in the billing-code clipboard format.
// The diluent line is only emitted in no-ambient mode when diluent was used.
func BillingText(day models.DailyUsage, mode models.Mode) string {
	text := billingLine(day.Oxygen)
	if mode.TracksDiluent() && day.Diluent > 0 {
		text += "\n" + billingLine(day.Diluent)
	}
	return text
}

func billingLine(liters float64) string {
	return fmt.Sprintf("%s/%s*1", billingCode, decimal.NewFromFloat(liters).String())
}
