package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
	"github.com/joseluisinigo/logonhours/internal/core/services"
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

type scriptedUseCase struct {
	appliedTo []string
	applied   domain.LogonHours
}

func (u *scriptedUseCase) EncodeRanges(specs []in.RangeSpec) (domain.LogonHours, []string, error) {
	builder := services.NewScheduleBuilder()
	var advisories []string
	for _, spec := range specs {
		entry, minutesIgnored, err := builder.AddRange(spec.Days, spec.Start, spec.End)
		if err != nil {
			return domain.LogonHours{}, nil, err
		}
		if minutesIgnored {
			advisories = append(advisories, entry.String())
		}
	}
	return services.Encode(builder.Entries()), advisories, nil
}

func (u *scriptedUseCase) ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error) {
	return []domain.OrganizationalUnit{{DN: "ou=it,dc=corp", Name: "it"}}, nil
}

func (u *scriptedUseCase) ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error) {
	return []domain.Account{
		{DN: "cn=alice," + ouDN, SAMAccountName: "alice", DisplayName: "Alice"},
		{DN: "cn=bob," + ouDN, SAMAccountName: "bob", DisplayName: "Bob"},
	}, nil
}

func (u *scriptedUseCase) Apply(ctx context.Context, accountDNs []string, hours domain.LogonHours) []domain.ApplyResult {
	u.appliedTo = accountDNs
	u.applied = hours
	results := make([]domain.ApplyResult, len(accountDNs))
	for i, dn := range accountDNs {
		results[i] = domain.ApplyResult{AccountDN: dn}
	}
	return results
}

func runScript(t *testing.T, useCase in.ScheduleUseCase, script string) string {
	var output bytes.Buffer
	session := NewSession(useCase, nopLogger{}, strings.NewReader(script), &output)
	require.NoError(t, session.Run(context.Background()))
	return output.String()
}

func TestSessionAddListQuit(t *testing.T) {
	output := runScript(t, &scriptedUseCase{},
		"2\nM-F\n9\n17\n3\nq\n")

	assert.Contains(t, output, "added range 1: M-F 9-17")
	assert.Contains(t, output, "[1] M-F 9-17")
}

func TestSessionRejectsBadRangeAndContinues(t *testing.T) {
	output := runScript(t, &scriptedUseCase{},
		"2\nLunes\n9\n17\n2\nM\n9\n17\nq\n")

	assert.Contains(t, output, "rejected")
	assert.Contains(t, output, "added range 1: M 9-17")
}

func TestSessionAdvisoryOnTruncatedMinutes(t *testing.T) {
	output := runScript(t, &scriptedUseCase{},
		"2\nM\n9:30\n17\nq\n")

	assert.Contains(t, output, "note:")
}

func TestSessionSelectAndApply(t *testing.T) {
	useCase := &scriptedUseCase{}
	output := runScript(t, useCase,
		"1\n1\n*\n2\nM\n9\n17\n6\nq\n")

	assert.Contains(t, output, "selected all 2 accounts")
	assert.Contains(t, output, "applied to 2 account(s), 0 failed")
	require.Len(t, useCase.appliedTo, 2)
	assert.True(t, useCase.applied.Allowed(domain.Monday, 9))
	assert.False(t, useCase.applied.Allowed(domain.Monday, 17))
}

func TestSessionAllDenyNeedsConfirmation(t *testing.T) {
	useCase := &scriptedUseCase{}
	output := runScript(t, useCase,
		"1\n1\n1\n6\nn\nq\n")

	assert.Contains(t, output, "never be able to log in")
	assert.Contains(t, output, "aborted")
	assert.Empty(t, useCase.appliedTo)
}

func TestSessionRemoveRange(t *testing.T) {
	output := runScript(t, &scriptedUseCase{},
		"2\nM\n8\n12\n2\nT\n8\n12\n4\n1\n3\nq\n")

	assert.Contains(t, output, "removed M 8-12")
	assert.Contains(t, output, "[1] T 8-12")
}
