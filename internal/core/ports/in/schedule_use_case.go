package in

import (
	"context"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

// RangeSpec is one raw availability range as delivered by a transport: a
// day or day-range token plus start/end time literals.
type RangeSpec struct {
	Days  string `json:"days" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type ScheduleUseCase interface {
	// EncodeRanges validates raw ranges and merges them into the 21-byte
	// bitmap. The returned advisories are non-fatal notices (truncated
	// minutes); an error means one range was rejected and nothing encoded.
	EncodeRanges(specs []RangeSpec) (domain.LogonHours, []string, error)

	// Directory lookups used to pick targets
	ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error)
	ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error)

	// Apply writes one bitmap to many accounts, best effort, one result
	// per account.
	Apply(ctx context.Context, accountDNs []string, hours domain.LogonHours) []domain.ApplyResult
}
