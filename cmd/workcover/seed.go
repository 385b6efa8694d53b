package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/compensation"
	"github.com/sga/workcover-engine/store/sqlite"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Load demonstration cases into an empty database",
	Action: func(cCtx *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := sqlite.New(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		ctx := context.Background()

		n, err := store.CountCases(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("database already holds %d cases; seed only runs on an empty database", n)
		}

		if err := seed(ctx, store); err != nil {
			return err
		}

		logrus.WithField("db", config.DatabasePath).Info("demonstration data loaded")
		return nil
	},
}

func seed(ctx context.Context, store *sqlite.Store) error {
	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(claims.DateLayout)
	}

	// Modified-duties case on a graduated return, with a current COC
	// and one recorded pay period.
	nguyen := &claims.Case{
		WorkerName:        "Sarah Nguyen",
		State:             "VIC",
		Entity:            "Cleanaway Services Pty Ltd",
		Site:              "Collins Street Tower",
		ClaimNumber:       "WC-2025-0187",
		DateOfInjury:      day(-60),
		InjuryDescription: "Lower back strain lifting equipment",
		ShiftStructure:    "12 hrs/week",
		CurrentCapacity:   claims.CapacityModified,
		PIAWE:             decimal.NewNullDecimal(decimal.NewFromFloat(1245.60)),
		ReductionRate:     claims.Rate95,
		Priority:          claims.PriorityMedium,
		Strategy:          "Graduated RTW over 4 weeks",
		NextAction:        "Review hours at next certificate",
	}
	if err := store.CreateCase(ctx, nguyen); err != nil {
		return err
	}

	days, hours := 3, 4.0
	if err := store.AddCertificate(ctx, &claims.Certificate{
		CaseID:      nguyen.ID,
		CertFrom:    day(-18),
		CertTo:      day(10),
		Capacity:    claims.CapacityModified,
		DaysPerWeek: &days,
		HoursPerDay: &hours,
		Notes:       "No lifting above 5kg",
	}); err != nil {
		return err
	}

	for _, doc := range []string{"Incident Report", "Claim Form", "Certificate of Capacity (Current)"} {
		if err := store.SetChecklistItem(ctx, nguyen.ID, doc, true); err != nil {
			return err
		}
	}

	res := compensation.Calculate(compensation.Input{
		PIAWE:    nguyen.PIAWE.Decimal,
		Rate:     nguyen.ReductionRate.Fraction(),
		Earnings: decimal.NewFromFloat(398.40),
	})
	if err := store.RecordPayroll(ctx, &claims.PayrollEntry{
		CaseID:        nguyen.ID,
		PeriodFrom:    day(-14),
		PeriodTo:      day(-8),
		PIAWE:         nguyen.PIAWE.Decimal,
		ReductionRate: nguyen.ReductionRate.Fraction(),
		HoursWorked:   12,
		Wages:         decimal.NewFromFloat(398.40),
		Compensation:  res.Compensation,
		TopUp:         res.TopUp,
		Total:         res.Total,
	}); err != nil {
		return err
	}

	// No-capacity case with an expired COC and termination proceedings
	// under way.
	oliveri := &claims.Case{
		WorkerName:        "Mark Oliveri",
		State:             "NSW",
		Entity:            "Cleanaway Services Pty Ltd",
		Site:              "Macquarie Park Campus",
		ClaimNumber:       "WC-2024-0912",
		DateOfInjury:      day(-200),
		InjuryDescription: "Shoulder reconstruction following fall",
		CurrentCapacity:   claims.CapacityNone,
		PIAWE:             decimal.NewNullDecimal(decimal.NewFromFloat(987.30)),
		ReductionRate:     claims.Rate95,
		Priority:          claims.PriorityHigh,
		Strategy:          "Assess against inherent requirements",
	}
	if err := store.CreateCase(ctx, oliveri); err != nil {
		return err
	}

	if err := store.AddCertificate(ctx, &claims.Certificate{
		CaseID:   oliveri.ID,
		CertFrom: day(-33),
		CertTo:   day(-5),
		Capacity: claims.CapacityNone,
	}); err != nil {
		return err
	}

	if err := store.CreateTermination(ctx, &claims.Termination{
		CaseID:          oliveri.ID,
		TerminationType: claims.TerminationTypeInherent,
		ApprovedBy:      "HR Director",
		ApprovedDate:    day(-7),
		AssignedTo:      "Case Manager",
		Notes:           "IME confirms permanent restrictions",
	}); err != nil {
		return err
	}

	// New case with no certificate yet; surfaces as a missing-COC alert.
	walsh := &claims.Case{
		WorkerName:        "Emma Walsh",
		State:             "QLD",
		Entity:            "Cleanaway Services Pty Ltd",
		Site:              "Brisbane Distribution Centre",
		ClaimNumber:       "WC-2025-0233",
		DateOfInjury:      day(-3),
		InjuryDescription: "Laceration to left hand",
		CurrentCapacity:   claims.CapacityUncertain,
		Priority:          claims.PriorityLow,
		NextAction:        "Obtain first Certificate of Capacity",
	}
	return store.CreateCase(ctx, walsh)
}
