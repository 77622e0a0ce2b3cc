package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
)

// ScheduleService implements in.ScheduleUseCase on top of the directory
// gateway and the optional listing cache.
type ScheduleService struct {
	directory out.DirectoryPort
	cache     out.CachePort
	logger    out.LoggerPort
}

func NewScheduleService(
	directory out.DirectoryPort,
	cache out.CachePort,
	logger out.LoggerPort,
) *ScheduleService {
	return &ScheduleService{
		directory: directory,
		cache:     cache,
		logger:    logger.WithModule("ScheduleService"),
	}
}

func (s *ScheduleService) EncodeRanges(specs []in.RangeSpec) (domain.LogonHours, []string, error) {
	builder := NewScheduleBuilder()
	var advisories []string

	for _, spec := range specs {
		entry, minutesIgnored, err := builder.AddRange(spec.Days, spec.Start, spec.End)
		if err != nil {
			return domain.LogonHours{}, nil, err
		}
		if minutesIgnored {
			advisories = append(advisories,
				fmt.Sprintf("minutes in %q are ignored, the schedule has whole-hour granularity", entry))
		}
	}

	return Encode(builder.Entries()), advisories, nil
}

func (s *ScheduleService) ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error) {
	if s.cache != nil {
		if ous, ok := s.cache.GetOrganizationalUnits(ctx); ok {
			s.logger.Debug("directory.ous.cache.hit", out.LogFields{
				"count": len(ous),
			})
			return ous, nil
		}
	}

	ous, err := s.directory.ListOrganizationalUnits(ctx)
	if err != nil {
		s.logger.Error("directory.ous.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.StoreOrganizationalUnits(ctx, ous)
	}

	return ous, nil
}

func (s *ScheduleService) ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error) {
	if s.cache != nil {
		if accounts, ok := s.cache.GetAccounts(ctx, ouDN); ok {
			s.logger.Debug("directory.accounts.cache.hit", out.LogFields{
				"ouDn":  ouDN,
				"count": len(accounts),
			})
			return accounts, nil
		}
	}

	accounts, err := s.directory.ListAccounts(ctx, ouDN)
	if err != nil {
		s.logger.Error("directory.accounts.fetch_failed", out.LogFields{
			"ouDn":  ouDN,
			"error": err.Error(),
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.StoreAccounts(ctx, ouDN, accounts)
	}

	return accounts, nil
}

// Apply writes the same bitmap to every account. Writes are independent:
// each outcome is collected on its own and a failed account never aborts or
// rolls back the others.
func (s *ScheduleService) Apply(ctx context.Context, accountDNs []string, hours domain.LogonHours) []domain.ApplyResult {
	batchID := uuid.New()

	s.logger.Info("schedule.apply.started", out.LogFields{
		"batchId":  batchID,
		"accounts": len(accountDNs),
		"allDeny":  hours.IsZero(),
	})

	results := make([]domain.ApplyResult, len(accountDNs))
	var wg sync.WaitGroup

	for i, accountDN := range accountDNs {
		wg.Add(1)
		go func(i int, accountDN string) {
			defer wg.Done()

			err := s.directory.ApplyLogonHours(ctx, accountDN, hours)
			results[i] = domain.ApplyResult{AccountDN: accountDN, Err: err}

			if err != nil {
				s.logger.Error("schedule.apply.account_failed", out.LogFields{
					"batchId": batchID,
					"account": accountDN,
					"error":   err.Error(),
				})
				return
			}

			s.logger.Debug("schedule.apply.account_ok", out.LogFields{
				"batchId": batchID,
				"account": accountDN,
			})
		}(i, accountDN)
	}

	wg.Wait()

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	s.logger.Info("schedule.apply.finished", out.LogFields{
		"batchId": batchID,
		"applied": len(results) - failed,
		"failed":  failed,
	})

	return results
}
