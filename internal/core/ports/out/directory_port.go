package out

import (
	"context"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
)

// DirectoryPort is the directory service collaborator: everything the core
// needs from Active Directory and nothing more.
type DirectoryPort interface {
	ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error)
	ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error)

	// ApplyLogonHours replaces the account's logonHours attribute with the
	// 21-byte bitmap.
	ApplyLogonHours(ctx context.Context, accountDN string, hours domain.LogonHours) error

	Close() error
}
