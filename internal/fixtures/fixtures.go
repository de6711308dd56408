// Package fixtures loads the records the CRUD layer normally owns from a YAML
// file, so a local ledger can be exercised without that layer.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"gopkg.in/yaml.v3"
)

// File is the fixture document. Amounts are written as quoted strings.
type File struct {
	Properties       []ledger.Property        `yaml:"properties"`
	Units            []ledger.Unit            `yaml:"units"`
	Leases           []ledger.Lease           `yaml:"leases"`
	Vendors          []ledger.Vendor          `yaml:"vendors"`
	ScheduledCharges []ledger.ScheduledCharge `yaml:"scheduledCharges"`
	RentIncreases    []ledger.RentIncrease    `yaml:"rentIncreases"`
}

type Summary struct {
	Properties       int `json:"properties"`
	Units            int `json:"units"`
	Leases           int `json:"leases"`
	Vendors          int `json:"vendors"`
	ScheduledCharges int `json:"scheduledCharges"`
	RentIncreases    int `json:"rentIncreases"`
	// Existing counts schedules and increases skipped because their ID was
	// already present.
	Existing int `json:"existing"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &f, nil
}

// Import writes f in dependency order. Properties, units, leases and vendors
// are upserted. Schedules and rent increases go through the service so they
// get the same validation as API calls; ones whose ID already exists are left
// alone, which makes re-importing a file safe.
func Import(ctx context.Context, st *store.Store, svc *accounting.Service, f *File) (*Summary, error) {
	log := logger.WithComponent("fixtures")
	sum := &Summary{}

	for i := range f.Properties {
		if err := st.UpsertProperty(ctx, &f.Properties[i]); err != nil {
			return sum, err
		}
		sum.Properties++
	}
	for i := range f.Units {
		if err := st.UpsertUnit(ctx, &f.Units[i]); err != nil {
			return sum, err
		}
		sum.Units++
	}
	for i := range f.Leases {
		l := &f.Leases[i]
		if l.ChargeDay == 0 {
			l.ChargeDay = 1
		}
		if l.Status == "" {
			l.Status = ledger.LeaseActive
		}
		if err := st.UpsertLease(ctx, l); err != nil {
			return sum, fmt.Errorf("lease %s: %w", l.ID, err)
		}
		sum.Leases++
	}
	for i := range f.Vendors {
		if err := st.UpsertVendor(ctx, &f.Vendors[i]); err != nil {
			return sum, err
		}
		sum.Vendors++
	}

	for i := range f.ScheduledCharges {
		c := &f.ScheduledCharges[i]
		if c.ID != "" {
			if _, err := st.GetSchedule(ctx, c.ID); err == nil {
				sum.Existing++
				continue
			} else if !errors.Is(err, ledger.ErrScheduleNotFound) {
				return sum, err
			}
		}
		if err := svc.CreateSchedule(ctx, c); err != nil {
			return sum, fmt.Errorf("scheduled charge for lease %s: %w", c.LeaseID, err)
		}
		sum.ScheduledCharges++
	}
	for i := range f.RentIncreases {
		r := &f.RentIncreases[i]
		if r.ID != "" {
			if _, err := st.GetRentIncrease(ctx, r.ID); err == nil {
				sum.Existing++
				continue
			} else if !errors.Is(err, ledger.ErrRentIncreaseNotFound) {
				return sum, err
			}
		}
		if err := svc.CreateRentIncrease(ctx, r); err != nil {
			return sum, fmt.Errorf("rent increase for lease %s: %w", r.LeaseID, err)
		}
		sum.RentIncreases++
	}

	log.Info().
		Int("properties", sum.Properties).
		Int("units", sum.Units).
		Int("leases", sum.Leases).
		Int("vendors", sum.Vendors).
		Int("scheduled_charges", sum.ScheduledCharges).
		Int("rent_increases", sum.RentIncreases).
		Int("existing", sum.Existing).
		Msg("fixtures imported")
	return sum, nil
}
