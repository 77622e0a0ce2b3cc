package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
)

// Session is the interactive terminal front end: select target accounts,
// declare availability ranges, preview the bitmap, apply. All four input
// errors are recoverable, the loop just re-prompts.
type Session struct {
	useCase  in.ScheduleUseCase
	logger   out.LoggerPort
	reader   *bufio.Reader
	writer   io.Writer
	ranges   []in.RangeSpec
	targets  []domain.Account
	targetOU string
}

func NewSession(useCase in.ScheduleUseCase, logger out.LoggerPort, input io.Reader, output io.Writer) *Session {
	return &Session{
		useCase: useCase,
		logger:  logger.WithModule("CliSession"),
		reader:  bufio.NewReader(input),
		writer:  output,
	}
}

func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("cli.session.started", nil)
	s.printf("logonHours configurator\n")

	for {
		selected := "none"
		if len(s.targets) > 0 {
			selected = fmt.Sprintf("%d from %s", len(s.targets), s.targetOU)
		}
		s.printf("\n[1] Select target accounts  (%s)\n", selected)
		s.printf("[2] Add availability range  (%d declared)\n", len(s.ranges))
		s.printf("[3] List ranges\n")
		s.printf("[4] Remove range\n")
		s.printf("[5] Preview weekly schedule\n")
		s.printf("[6] Apply to selected accounts\n")
		s.printf("[q] Quit\n")

		choice, err := s.prompt("> ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "1":
			if err := s.selectTargets(ctx); err != nil {
				s.printf("error: %v\n", err)
			}
		case "2":
			s.addRange()
		case "3":
			s.listRanges()
		case "4":
			s.removeRange()
		case "5":
			s.preview()
		case "6":
			if err := s.apply(ctx); err != nil {
				s.printf("error: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		default:
			s.printf("unknown option %q\n", choice)
		}
	}
}

func (s *Session) selectTargets(ctx context.Context) error {
	ous, err := s.useCase.ListOrganizationalUnits(ctx)
	if err != nil {
		return err
	}
	if len(ous) == 0 {
		s.printf("no organizational units found\n")
		return nil
	}

	s.printf("\nOrganizational units:\n")
	for i, ou := range ous {
		s.printf("  [%d] %s  (%s)\n", i+1, ou.Name, ou.DN)
	}

	choice, err := s.prompt("OU number: ")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(ous) {
		s.printf("not a listed OU: %q\n", choice)
		return nil
	}
	ou := ous[index-1]

	accounts, err := s.useCase.ListAccounts(ctx, ou.DN)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		s.printf("no accounts under %s\n", ou.Name)
		return nil
	}

	s.printf("\nAccounts in %s:\n", ou.Name)
	for i, account := range accounts {
		name := account.DisplayName
		if name == "" {
			name = account.SAMAccountName
		}
		s.printf("  [%d] %s  (%s)\n", i+1, name, account.SAMAccountName)
	}

	choice, err = s.prompt("Accounts (comma-separated numbers, or * for all): ")
	if err != nil {
		return err
	}

	if strings.TrimSpace(choice) == "*" {
		s.targets = accounts
		s.targetOU = ou.Name
		s.printf("selected all %d accounts\n", len(accounts))
		return nil
	}

	var selected []domain.Account
	for _, part := range strings.Split(choice, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || index < 1 || index > len(accounts) {
			s.printf("not a listed account: %q\n", part)
			return nil
		}
		selected = append(selected, accounts[index-1])
	}

	s.targets = selected
	s.targetOU = ou.Name
	s.printf("selected %d account(s)\n", len(selected))
	return nil
}

func (s *Session) addRange() {
	days, err := s.prompt("Days (e.g. M, M-F, Sa-Su, F-M): ")
	if err != nil {
		return
	}
	start, err := s.prompt("Start time (e.g. 9, 16:00, 4PM): ")
	if err != nil {
		return
	}
	end, err := s.prompt("End time (exclusive): ")
	if err != nil {
		return
	}

	spec := in.RangeSpec{Days: days, Start: start, End: end}

	// Validate the single new range eagerly; it only joins the session
	// list once it is known good.
	_, advisories, err := s.useCase.EncodeRanges([]in.RangeSpec{spec})
	if err != nil {
		s.printf("rejected: %v\n", err)
		return
	}
	for _, advisory := range advisories {
		s.printf("note: %s\n", advisory)
	}

	s.ranges = append(s.ranges, spec)
	s.printf("added range %d: %s %s-%s\n", len(s.ranges), days, start, end)
}

func (s *Session) listRanges() {
	if len(s.ranges) == 0 {
		s.printf("no ranges declared\n")
		return
	}
	for i, spec := range s.ranges {
		s.printf("  [%d] %s %s-%s\n", i+1, spec.Days, spec.Start, spec.End)
	}
}

func (s *Session) removeRange() {
	s.listRanges()
	if len(s.ranges) == 0 {
		return
	}

	choice, err := s.prompt("Range number to remove: ")
	if err != nil {
		return
	}
	index, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || index < 1 || index > len(s.ranges) {
		s.printf("rejected: %v: %q\n", domain.ErrIndexOutOfRange, choice)
		return
	}

	removed := s.ranges[index-1]
	s.ranges = append(s.ranges[:index-1], s.ranges[index:]...)
	s.printf("removed %s %s-%s\n", removed.Days, removed.Start, removed.End)
}

func (s *Session) preview() {
	hours, _, err := s.useCase.EncodeRanges(s.ranges)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}

	s.printf("\n          0         6         12        18      23\n")
	for day := domain.Sunday; day <= domain.Saturday; day++ {
		row := make([]byte, 24)
		for hour := 0; hour < 24; hour++ {
			if hours.Allowed(day, hour) {
				row[hour] = '#'
			} else {
				row[hour] = '.'
			}
		}
		s.printf("%-9s %s\n", day, row)
	}
	if hours.IsZero() {
		s.printf("(all hours denied)\n")
	}
}

func (s *Session) apply(ctx context.Context) error {
	if len(s.targets) == 0 {
		s.printf("no accounts selected\n")
		return nil
	}

	hours, advisories, err := s.useCase.EncodeRanges(s.ranges)
	if err != nil {
		return err
	}
	for _, advisory := range advisories {
		s.printf("note: %s\n", advisory)
	}

	if hours.IsZero() {
		confirm, err := s.prompt("No hours are allowed: these accounts will never be able to log in. Apply anyway? [y/N] ")
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(confirm)) != "y" {
			s.printf("aborted\n")
			return nil
		}
	}

	dns := make([]string, len(s.targets))
	for i, account := range s.targets {
		dns[i] = account.DN
	}

	s.logger.Info("cli.apply.requested", out.LogFields{
		"accounts": len(dns),
		"allDeny":  hours.IsZero(),
	})

	results := s.useCase.Apply(ctx, dns, hours)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			s.printf("  FAIL %s: %v\n", result.AccountDN, result.Err)
		} else {
			s.printf("  ok   %s\n", result.AccountDN)
		}
	}
	s.printf("applied to %d account(s), %d failed\n", len(results)-failed, failed)

	return nil
}

func (s *Session) prompt(label string) (string, error) {
	s.printf("%s", label)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, format, args...)
}
