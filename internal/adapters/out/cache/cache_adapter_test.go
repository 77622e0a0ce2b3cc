package cache

import (
	"context"
	"testing"

	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields) {}
func (nopLogger) Warn(string, out.LogFields) {}
func (nopLogger) Error(string, out.LogFields) {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort { return l }

func newTestAdapter(t *testing.T) *CacheAdapter {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.AccountsSize = 8

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, adapter)
	return adapter
}

func TestCacheAdapterDisabled(t *testing.T) {
	cfg := &config.Config{}
	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	assert.NoError(t, err)
	assert.Nil(t, adapter)
}

func TestAccountsStoreAndGet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	_, ok := adapter.GetAccounts(ctx, "ou=it,dc=corp")
	assert.False(t, ok)

	accounts := []domain.Account{{DN: "cn=alice,ou=it,dc=corp", SAMAccountName: "alice"}}
	adapter.StoreAccounts(ctx, "ou=it,dc=corp", accounts)

	got, ok := adapter.GetAccounts(ctx, "ou=it,dc=corp")
	require.True(t, ok)
	assert.Equal(t, accounts, got)

	adapter.InvalidateAccounts(ctx, "ou=it,dc=corp")
	_, ok = adapter.GetAccounts(ctx, "ou=it,dc=corp")
	assert.False(t, ok)
}

func TestOrganizationalUnitsStoreAndGet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	_, ok := adapter.GetOrganizationalUnits(ctx)
	assert.False(t, ok)

	ous := []domain.OrganizationalUnit{{DN: "ou=it,dc=corp", Name: "it"}}
	adapter.StoreOrganizationalUnits(ctx, ous)

	got, ok := adapter.GetOrganizationalUnits(ctx)
	require.True(t, ok)
	assert.Equal(t, ous, got)

	adapter.InvalidateOrganizationalUnits(ctx)
	_, ok = adapter.GetOrganizationalUnits(ctx)
	assert.False(t, ok)
}
