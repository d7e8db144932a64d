// Package providers routes canonical "analyze this bill image" requests to
// one of several upstream AI backends and normalizes their structurally
// different responses into a single bill-extraction result. Each upstream's
// envelope handling is isolated in its own adapter so a changed or malformed
// upstream shape fails exactly one adapter.
package providers

import "context"

// BillType classifies a utility bill.
type BillType string

const (
	BillTypeElectricity BillType = "ELECTRICITY"
	BillTypeGas         BillType = "GAS"
	BillTypeWater       BillType = "WATER"
)

// Period is one usage block on a bill. Upstreams are instructed to sum
// blocks covering an identical date range into a single period.
type Period struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	UsageCost float64 `json:"usageCost"`
}

// BillExtraction is the canonical result returned to the client regardless
// of which provider served the request. It is produced fresh per request and
// never persisted by the gateway.
type BillExtraction struct {
	Type          BillType `json:"type"`
	SuggestedName string   `json:"suggestedName"`
	Periods       []Period `json:"periods"`
	SupplyCost    float64  `json:"supplyCost"`
	SewerageCost  float64  `json:"sewerageCost"`
}

// Analyzer is the single capability every provider adapter implements.
// The image is base64 without a data-URI prefix; adapters add whatever
// framing their upstream expects.
type Analyzer interface {
	Analyze(ctx context.Context, imageB64, prompt string) (*BillExtraction, error)
}

// ExtractionPrompt is the fixed natural-language instruction sent to every
// upstream. All adapters share it so the five canonical fields and the
// period-merging rule are described identically everywhere.
const ExtractionPrompt = `Analyze this utility bill image and extract the following in JSON:
- type (ELECTRICITY/GAS/WATER)
- suggestedName
- periods [{startDate, endDate, usageCost}] (YYYY-MM-DD). Sum blocks for same range.
- supplyCost (number)
- sewerageCost (number)
Use 0 if field missing.`
