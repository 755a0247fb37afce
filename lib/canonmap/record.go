package canonmap

import (
	"fmt"
	"time"
)

// Fuel is a canonical fuel-type key.
type Fuel string

const (
	Biomass    Fuel = "biomass"
	Coal       Fuel = "coal"
	Gas        Fuel = "gas"
	Geothermal Fuel = "geothermal"
	Hydro      Fuel = "hydro"
	Nuclear    Fuel = "nuclear"
	Oil        Fuel = "oil"
	Solar      Fuel = "solar"
	Wind       Fuel = "wind"
	Unknown    Fuel = "unknown"
)

// Fuels lists every canonical fuel key in stable order.
func Fuels() []Fuel {
	return []Fuel{
		Biomass, Coal, Gas, Geothermal, Hydro,
		Nuclear, Oil, Solar, Wind, Unknown,
	}
}

// FuelMix holds per-fuel megawatt values. A nil field means the source
// did not report that fuel, which is distinct from an explicit zero.
type FuelMix struct {
	Biomass    *float64 `json:"biomass,omitempty"`
	Coal       *float64 `json:"coal,omitempty"`
	Gas        *float64 `json:"gas,omitempty"`
	Geothermal *float64 `json:"geothermal,omitempty"`
	Hydro      *float64 `json:"hydro,omitempty"`
	Nuclear    *float64 `json:"nuclear,omitempty"`
	Oil        *float64 `json:"oil,omitempty"`
	Solar      *float64 `json:"solar,omitempty"`
	Wind       *float64 `json:"wind,omitempty"`
	Unknown    *float64 `json:"unknown,omitempty"`
}

func (m *FuelMix) field(f Fuel) **float64 {
	switch f {
	case Biomass:
		return &m.Biomass
	case Coal:
		return &m.Coal
	case Gas:
		return &m.Gas
	case Geothermal:
		return &m.Geothermal
	case Hydro:
		return &m.Hydro
	case Nuclear:
		return &m.Nuclear
	case Oil:
		return &m.Oil
	case Solar:
		return &m.Solar
	case Wind:
		return &m.Wind
	case Unknown:
		return &m.Unknown
	}
	return nil
}

// Add accumulates v onto fuel, so multiple source fields can compose a
// single canonical bucket.
func (m *FuelMix) Add(f Fuel, v float64) error {
	p := m.field(f)
	if p == nil {
		return fmt.Errorf("unknown fuel key %q", f)
	}
	if *p == nil {
		set := v
		*p = &set
		return nil
	}
	**p += v
	return nil
}

// Value reports the amount for fuel and whether the source set it.
func (m *FuelMix) Value(f Fuel) (float64, bool) {
	p := m.field(f)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// ProductionRecord is the canonical generation-mix observation for one
// region at one instant. Capacity is set only by sources that publish a
// maximum-capability figure alongside current generation.
type ProductionRecord struct {
	Region     string    `json:"region"`
	At         time.Time `json:"datetime"`
	Production FuelMix   `json:"production"`
	Capacity   *FuelMix  `json:"capacity,omitempty"`
	Source     string    `json:"source"`
}

// PriceRecord is the canonical spot-price observation for one region at
// one hour bucket.
type PriceRecord struct {
	Region   string    `json:"region"`
	At       time.Time `json:"datetime"`
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
	Source   string    `json:"source"`
}

// FlowRecord is the canonical cross-border flow observation. Positive
// NetFlow means power moving from the first region of the sorted pair to
// the second.
type FlowRecord struct {
	SortedPairKey string    `json:"sortedRegionPair"`
	At            time.Time `json:"datetime"`
	NetFlow       float64   `json:"netFlow"`
	Source        string    `json:"source"`
}

// ConsumptionRecord is the canonical load observation for one region at
// one instant.
type ConsumptionRecord struct {
	Region      string    `json:"region"`
	At          time.Time `json:"datetime"`
	Consumption float64   `json:"consumption"`
	Source      string    `json:"source"`
}

// PairKey joins two region codes into their canonical sorted key, so
// A->B and B->A address the same interconnection.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "->" + b
}
