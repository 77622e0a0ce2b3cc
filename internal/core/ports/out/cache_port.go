package out

import (
	"context"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

type CachePort interface {
	// Account listings per organizational unit
	GetAccounts(ctx context.Context, ouDN string) ([]domain.Account, bool)
	StoreAccounts(ctx context.Context, ouDN string, accounts []domain.Account)
	InvalidateAccounts(ctx context.Context, ouDN string)

	// The organizational unit tree
	GetOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, bool)
	StoreOrganizationalUnits(ctx context.Context, ous []domain.OrganizationalUnit)
	InvalidateOrganizationalUnits(ctx context.Context)
}
