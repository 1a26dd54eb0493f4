package deadcode

import (
	"fmt"

	"github.com/reachscan/reachscan/domain"
)

// Bandwidth pricing and carbon-intensity constants behind the cost-impact
// estimate (spec.md §4.7). These are rough defaults, not a billing feature;
// EngineConfig.MonthlyTrafficGB is the only input callers are expected to tune.
const (
	usdPerGB       = 0.09  // typical CDN egress price per GB shipped
	co2GramsPerGB  = 0.5 * 1000 // average grid carbon intensity applied per GB transferred
)

func estimateCost(f domain.File, cfg *domain.EngineConfig) domain.CostImpact {
	if cfg.MonthlyTrafficGB <= 0 || f.Size <= 0 {
		return domain.CostImpact{}
	}
	fractionOfGB := float64(f.Size) / (1024 * 1024 * 1024)
	monthlyShipments := cfg.MonthlyTrafficGB
	return domain.CostImpact{
		BandwidthCostUSD: fractionOfGB * monthlyShipments * usdPerGB,
		CO2Grams:         fractionOfGB * monthlyShipments * co2GramsPerGB,
	}
}

func recommend(f domain.File) domain.Recommendation {
	return domain.Recommendation{
		VerifyFirstCommand: fmt.Sprintf("grep -rn %q --include=*.{js,ts,jsx,tsx,py,go,java,kt,cs,rs} .", f.Path),
		Message:            fmt.Sprintf("%s has no incoming references from any entry point; verify with the command above before deleting.", f.Path),
	}
}
