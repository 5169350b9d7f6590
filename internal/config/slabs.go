package config

import (
	"fmt"

	"github.com/fleetora/fleet-ops-api/internal/settlement"
	"github.com/spf13/viper"
)

// slabFile mirrors the YAML shape of a slab override file:
//
//	rent:
//	  morning:
//	    - min_trips: 0
//	      amount: 650
//	earnings:
//	  morning:
//	    - min_trips: 0
//	      amount: 500
type slabFile struct {
	Rent     map[string][]settlement.Slab `mapstructure:"rent"`
	Earnings map[string][]settlement.Slab `mapstructure:"earnings"`
}

// LoadSlabs reads the admin-configured slab tables. Any missing file, parse
// error or empty table falls back to the hardcoded defaults, so a broken
// override can never leave the resolver without thresholds.
func LoadSlabs(path string) (settlement.Tables, error) {
	tables := settlement.DefaultTables()

	v := viper.New()
	v.SetConfigName("slabs")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		return tables, fmt.Errorf("slab config not read, using defaults: %w", err)
	}

	var file slabFile
	if err := v.Unmarshal(&file); err != nil {
		return tables, fmt.Errorf("slab config not parsed, using defaults: %w", err)
	}

	for shift, slabs := range file.Rent {
		if len(slabs) > 0 {
			tables.Rent[settlement.Shift(shift)] = settlement.Table(slabs)
		}
	}
	for shift, slabs := range file.Earnings {
		if len(slabs) > 0 {
			tables.CompanyEarnings[settlement.Shift(shift)] = settlement.Table(slabs)
		}
	}
	return tables, nil
}
