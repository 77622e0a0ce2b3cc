package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
)

// ouListCache holds the one OU tree listing with a TTL; the tree changes
// rarely but must not survive the whole process lifetime.
type ouListCache struct {
	list      []domain.OrganizationalUnit
	timestamp time.Time
	ttl       time.Duration
}

// CacheAdapter implements out.CachePort: an LRU of account listings keyed
// by OU DN plus the TTL-guarded OU list.
type CacheAdapter struct {
	accounts *lru.Cache[string, []domain.Account]
	ous      *ouListCache
	mu       sync.RWMutex
	logger   out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	accounts, err := lru.New[string, []domain.Account](cfg.Cache.AccountsSize)
	if err != nil {
		logger.Error("cache.accounts.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AccountsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		accounts: accounts,
		ous:      &ouListCache{ttl: 30 * time.Minute},
		logger:   logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetAccounts(ctx context.Context, ouDN string) ([]domain.Account, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	accounts, exists := c.accounts.Get(ouDN)
	if !exists {
		c.logger.Debug("cache.accounts.get.miss", out.LogFields{
			"ouDn": ouDN,
		})
		return nil, false
	}

	c.logger.Debug("cache.accounts.get.hit", out.LogFields{
		"ouDn":  ouDN,
		"count": len(accounts),
	})
	return accounts, true
}

func (c *CacheAdapter) StoreAccounts(ctx context.Context, ouDN string, accounts []domain.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.accounts.store", out.LogFields{
		"ouDn":  ouDN,
		"count": len(accounts),
	})

	c.accounts.Add(ouDN, accounts)
}

func (c *CacheAdapter) InvalidateAccounts(ctx context.Context, ouDN string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts.Remove(ouDN)
}

func (c *CacheAdapter) GetOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ous.list == nil || time.Since(c.ous.timestamp) > c.ous.ttl {
		return nil, false
	}

	c.logger.Debug("cache.ous.get.hit", out.LogFields{
		"count": len(c.ous.list),
	})
	return c.ous.list, true
}

func (c *CacheAdapter) StoreOrganizationalUnits(ctx context.Context, ous []domain.OrganizationalUnit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.ous.store", out.LogFields{
		"count": len(ous),
	})

	c.ous.list = ous
	c.ous.timestamp = time.Now()
}

func (c *CacheAdapter) InvalidateOrganizationalUnits(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ous.list = nil
}
