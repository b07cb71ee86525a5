package models

import "github.com/funnelworks/conversion-analytics-service/internal/analysis"

// AnalysisResponse is returned by GET /analysis. It echoes the two metric
// identifiers and the effective granularity alongside the engine result so
// stored responses are self-describing.
type AnalysisResponse struct {
	StartEvent      string          `json:"start_event"`
	ConversionEvent string          `json:"conversion_event"`
	Granularity     string          `json:"granularity"`
	Result          analysis.Result `json:"result"`
}
