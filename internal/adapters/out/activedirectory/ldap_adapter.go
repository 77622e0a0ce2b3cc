package activedirectory

import (
	"context"
	"fmt"

	ldap "github.com/go-ldap/ldap/v3"
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
)

const logonHoursAttribute = "logonHours"

const (
	ouFilter      = "(objectClass=organizationalUnit)"
	accountFilter = "(&(objectCategory=person)(objectClass=user))"
)

// LdapAdapter implements out.DirectoryPort against Active Directory over
// LDAP. One bound connection per adapter; the tool is session-scoped, so no
// pooling or reconnect logic.
type LdapAdapter struct {
	conn   *ldap.Conn
	cfg    *config.Config
	logger out.LoggerPort
}

func NewLdapAdapter(cfg *config.Config, logger out.LoggerPort) (*LdapAdapter, error) {
	conn, err := ldap.DialURL(cfg.Directory.URL)
	if err != nil {
		logger.Error("directory.connect.failed", out.LogFields{
			"url":   cfg.Directory.URL,
			"error": err.Error(),
		})
		return nil, err
	}

	if err := conn.Bind(cfg.Directory.BindDN, cfg.Directory.BindPassword); err != nil {
		conn.Close()
		logger.Error("directory.bind.failed", out.LogFields{
			"bindDn": cfg.Directory.BindDN,
			"error":  err.Error(),
		})
		return nil, err
	}

	logger.Info("directory.connected", out.LogFields{
		"url":    cfg.Directory.URL,
		"baseDn": cfg.Directory.BaseDN,
	})

	return &LdapAdapter{
		conn:   conn,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (a *LdapAdapter) ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Info("directory.ous.fetch", out.LogFields{
		"baseDn": a.cfg.Directory.BaseDN,
	})

	req := ldap.NewSearchRequest(
		a.cfg.Directory.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		ouFilter,
		[]string{"ou"},
		nil,
	)

	res, err := a.conn.SearchWithPaging(req, a.cfg.Directory.PageSize)
	if err != nil {
		a.logger.Error("directory.ous.fetch_failed", out.LogFields{
			"baseDn": a.cfg.Directory.BaseDN,
			"error":  err.Error(),
		})
		return nil, err
	}

	ous := make([]domain.OrganizationalUnit, 0, len(res.Entries))
	for _, entry := range res.Entries {
		ous = append(ous, domain.OrganizationalUnit{
			DN:   entry.DN,
			Name: entry.GetAttributeValue("ou"),
		})
	}

	a.logger.Debug("directory.ous.fetch_success", out.LogFields{
		"count": len(ous),
	})

	return ous, nil
}

func (a *LdapAdapter) ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Info("directory.accounts.fetch", out.LogFields{
		"ouDn": ouDN,
	})

	req := ldap.NewSearchRequest(
		ouDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		accountFilter,
		[]string{"sAMAccountName", "displayName"},
		nil,
	)

	res, err := a.conn.SearchWithPaging(req, a.cfg.Directory.PageSize)
	if err != nil {
		a.logger.Error("directory.accounts.fetch_failed", out.LogFields{
			"ouDn":  ouDN,
			"error": err.Error(),
		})
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(res.Entries))
	for _, entry := range res.Entries {
		accounts = append(accounts, domain.Account{
			DN:             entry.DN,
			SAMAccountName: entry.GetAttributeValue("sAMAccountName"),
			DisplayName:    entry.GetAttributeValue("displayName"),
		})
	}

	a.logger.Debug("directory.accounts.fetch_success", out.LogFields{
		"ouDn":  ouDN,
		"count": len(accounts),
	})

	return accounts, nil
}

func (a *LdapAdapter) ApplyLogonHours(ctx context.Context, accountDN string, hours domain.LogonHours) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.logger.Info("directory.logon_hours.modify", out.LogFields{
		"account": accountDN,
		"allDeny": hours.IsZero(),
	})

	req := ldap.NewModifyRequest(accountDN, nil)
	req.Replace(logonHoursAttribute, []string{string(hours.Bytes())})

	if err := a.conn.Modify(req); err != nil {
		a.logger.Error("directory.logon_hours.modify_failed", out.LogFields{
			"account": accountDN,
			"error":   err.Error(),
		})
		return fmt.Errorf("modify %s on %s: %w", logonHoursAttribute, accountDN, err)
	}

	a.logger.Debug("directory.logon_hours.modify_success", out.LogFields{
		"account": accountDN,
	})

	return nil
}

func (a *LdapAdapter) Close() error {
	return a.conn.Close()
}
