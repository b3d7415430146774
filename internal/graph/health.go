package graph

import "math"

// HealthBreakdown shows the sub-scores of the lint formula
type HealthBreakdown struct {
	Connectivity float64 `json:"connectivity"`
	Components   float64 `json:"components"`
	Acyclicity   float64 `json:"acyclicity"`
	Reachability float64 `json:"reachability"`
}

// AnalysisReport is the full board lint result
type AnalysisReport struct {
	HealthScore     float64             `json:"health_score"`
	HealthBreakdown HealthBreakdown     `json:"health_breakdown"`
	Topology        *TopologyReport     `json:"topology"`
	Cycles          *CycleReport        `json:"cycles"`
	Reachability    *ReachabilityReport `json:"reachability"`
}

// AnalyzerConfig holds analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 6,
		TopN:         50,
	}
}

// Analyze runs all analyses and computes a composite health score
func Analyze(snap *BoardSnapshot, config *AnalyzerConfig) *AnalysisReport {
	topology := ComputeTopology(snap, config.HubThreshold, config.TopN)
	cycles := ComputeCycles(snap)
	reach := ComputeReachability(snap)

	total := float64(topology.TotalCards)

	var connectivity, components, acyclicity, reachability float64

	if total > 0 {
		connectivity = clamp(1.0-math.Min(float64(topology.OrphanCount)/total, 0.2)*5.0, 0, 1)
		acyclicity = clamp(1.0-math.Min(float64(cycles.CardsInLoop)/total, 0.1)*10.0, 0, 1)
		unusable := float64(reach.StrandedCount + reach.DeadGatedCount)
		reachability = clamp(1.0-math.Min(unusable/total, 0.05)*20.0, 0, 1)
	}
	if topology.NumComponents > 0 {
		components = clamp(1.0/float64(topology.NumComponents), 0, 1)
	}

	healthScore := 0.20*connectivity + 0.20*components + 0.20*acyclicity + 0.40*reachability

	return &AnalysisReport{
		HealthScore: healthScore,
		HealthBreakdown: HealthBreakdown{
			Connectivity: connectivity,
			Components:   components,
			Acyclicity:   acyclicity,
			Reachability: reachability,
		},
		Topology:     topology,
		Cycles:       cycles,
		Reachability: reach,
	}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
