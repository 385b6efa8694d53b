/*
Package compensation computes weekly compensation entitlements from
PIAWE figures.

PURPOSE:
  The one genuinely rule-bearing calculation in the system. Given a
  worker's PIAWE (pre-injury average weekly earnings), the statutory
  reduction rate, current weekly earnings on modified duties, days
  absent on no-capacity status and any back-pay, compute the
  entitlement, compensation payable, top-up and total payable for a pay
  period.

FORMULAS:
  entitlement = PIAWE * rate
  dailyRate   = entitlement / 5            (5-working-day week)

  Modified duties (earnings > 0):
    compensation = max(0, entitlement - earnings*rate)
    topUp        = max(0, entitlement - earnings)   when earnings < entitlement

  Full incapacity (earnings == 0):
    compensation = dailyRate * daysAbsent
    topUp        = 0

  total = earnings + compensation + backPay

  The rate applies to earnings a second time in the modified-duties
  compensation line while the top-up line uses raw earnings. That
  asymmetry is the modeled policy and must not be "fixed" here.

PRECISION:
  All arithmetic is decimal.Decimal at full precision. Rounding to two
  places happens only at the display/document boundary, never inside
  the calculation, so the three output figures cannot drift apart from
  compounded rounding.

DEGRADATION:
  Never returns an error. PIAWE <= 0 or a zero rate produce a zero
  entitlement; surfacing "entitlement data missing" is the caller's
  workflow concern (see claims.BuildAlerts), not a calculation fault.
*/
package compensation

import (
	"github.com/shopspring/decimal"
)

var workingDaysPerWeek = decimal.NewFromInt(5)

// Input carries the figures a calculation runs on. Zero values are
// legal everywhere: a zero PIAWE or rate simply yields zero
// entitlement.
type Input struct {
	PIAWE      decimal.Decimal // pre-injury average weekly earnings, pre-tax
	Rate       decimal.Decimal // reduction fraction: 0.95, 0.80 or 0
	Earnings   decimal.Decimal // current weekly earnings on modified duties (CWE)
	DaysAbsent int             // days absent in the pay period (no-capacity branch)
	BackPay    decimal.Decimal // back-pay and expenses added to the total
}

// Result holds the computed figures at full precision.
type Result struct {
	Entitlement  decimal.Decimal
	DailyRate    decimal.Decimal
	Compensation decimal.Decimal
	TopUp        decimal.Decimal
	Total        decimal.Decimal
}

// Calculate runs the compensation formulas. Pure; never errors.
func Calculate(in Input) Result {
	entitlement := decimal.Zero
	if in.PIAWE.IsPositive() {
		entitlement = in.PIAWE.Mul(in.Rate)
	}
	dailyRate := entitlement.Div(workingDaysPerWeek)

	var comp, topUp decimal.Decimal
	if in.Earnings.IsPositive() {
		// Modified duties: the worker earns, compensation covers the
		// rated gap. Note the rate is applied to earnings here but not
		// in the top-up line.
		comp = maxZero(entitlement.Sub(in.Earnings.Mul(in.Rate)))
		if in.Earnings.LessThan(entitlement) {
			topUp = maxZero(entitlement.Sub(in.Earnings))
		}
	} else {
		// Full incapacity: entitlement prorated per working day absent.
		comp = dailyRate.Mul(decimal.NewFromInt(int64(in.DaysAbsent)))
	}

	return Result{
		Entitlement:  entitlement,
		DailyRate:    dailyRate,
		Compensation: comp,
		TopUp:        topUp,
		Total:        in.Earnings.Add(comp).Add(in.BackPay),
	}
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
