// Package menu drives the interactive terminal workflow.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"filewarden/internal/config"
	"filewarden/internal/logger"
	"filewarden/internal/manifest"
	"filewarden/internal/scanner"
	"filewarden/internal/ui"

	"github.com/pkg/errors"
)

var errQuit = errors.New("quit requested")

// Menu is the interactive menu manager. It displays the main menu, handles
// user input and dispatches to the scan/verify/prune workflows.
type Menu struct {
	config   *config.Config
	console  *ui.Console
	logger   logger.Logger
	printer  *ui.Printer
	scanner  *scanner.Scanner
	manifest manifest.Repository
}

// MenuOption defines a single selectable menu entry.
type MenuOption struct {
	Label       string
	Description string
	Handler     func(ctx context.Context) error
	Color       string
	Enabled     bool
}

// New creates a menu manager instance.
func New(cfg *config.Config, console *ui.Console, sc *scanner.Scanner, repo manifest.Repository) *Menu {
	var log logger.Logger
	if console != nil {
		log = console.Logger()
	}
	if log == nil {
		log = logger.NewStandardLogger()
	}

	return &Menu{
		config:   cfg,
		console:  console,
		logger:   log,
		printer:  ui.NewPrinter(),
		scanner:  sc,
		manifest: repo,
	}
}

// Show displays the interactive menu until the user quits or ctx is done.
func (m *Menu) Show(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.printer.PrintBanner()
		m.console.WriteLine("Workspace: %s", m.config.Workspace)
		options := m.buildOptions()

		selected, err := m.promptSelection(options)
		if err != nil {
			if err.Error() == "^C" {
				m.logger.Info("User cancelled operation")
				return nil
			}
			return fmt.Errorf("failed to process user input: %w", err)
		}

		if err := options[selected].Handler(ctx); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			m.logger.Error("Operation failed: %v", err)
			m.waitForUserInput("\nPress Enter to continue...")
		}
	}
}

func (m *Menu) buildOptions() []MenuOption {
	return []MenuOption{
		{
			Label:       "1. Scan workspace",
			Description: "Hash matching files and record them in the manifest",
			Handler:     m.handleScan,
			Color:       "green",
			Enabled:     true,
		},
		{
			Label:       "2. Verify workspace",
			Description: "Compare current file hashes against the manifest",
			Handler:     m.handleVerify,
			Color:       "cyan",
			Enabled:     true,
		},
		{
			Label:       "3. Show manifest",
			Description: "List recorded entries",
			Handler:     m.handleShowManifest,
			Color:       "cyan",
			Enabled:     true,
		},
		{
			Label:       "4. Prune stale entries",
			Description: "Drop manifest entries whose files no longer exist",
			Handler:     m.handlePrune,
			Color:       "yellow",
			Enabled:     true,
		},
		{
			Label:       "0. Quit",
			Description: "Exit filewarden",
			Handler:     func(ctx context.Context) error { return errQuit },
			Color:       "red",
			Enabled:     true,
		},
	}
}

func (m *Menu) handleScan(ctx context.Context) error {
	m.console.StartProgress("Scanning workspace")
	report, err := m.scanner.Scan(ctx, m.config.Workspace, m.config.Scan.Patterns)
	m.console.StopProgress("Scanning workspace")
	if err != nil {
		return errors.Wrap(err, "workspace scan failed")
	}

	m.console.Success("Recorded %d of %d scanned file(s)", report.Recorded, report.Scanned)
	m.waitForUserInput("\nPress Enter to continue...")
	return nil
}

func (m *Menu) handleVerify(ctx context.Context) error {
	m.console.StartProgress("Verifying workspace")
	report, err := m.scanner.Verify(ctx, m.config.Workspace, m.config.Scan.Patterns)
	m.console.StopProgress("Verifying workspace")
	if err != nil {
		return errors.Wrap(err, "workspace verification failed")
	}

	if report.Clean() {
		m.console.Success("Workspace matches the manifest (%d file(s))", len(report.Ok))
	} else {
		for _, path := range report.Modified {
			m.printer.PrintWarn("modified:  " + path)
		}
		for _, path := range report.Missing {
			m.printer.PrintError("missing:   " + path)
		}
		for _, path := range report.Untracked {
			m.printer.PrintWarn("untracked: " + path)
		}
	}

	m.waitForUserInput("\nPress Enter to continue...")
	return nil
}

func (m *Menu) handleShowManifest(ctx context.Context) error {
	entries, err := m.manifest.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load manifest entries")
	}

	if len(entries) == 0 {
		m.console.WriteLine("Manifest is empty; run a scan first.")
	}
	for _, entry := range entries {
		m.console.WriteLine("%s  %10d  %s", entry.Hash, entry.Size, entry.Path)
	}

	m.waitForUserInput("\nPress Enter to continue...")
	return nil
}

func (m *Menu) handlePrune(ctx context.Context) error {
	confirmed, err := m.promptConfirm("Remove manifest entries for files that no longer exist")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := m.scanner.Prune(ctx, m.config.Workspace, m.config.Scan.Patterns)
	if err != nil {
		return errors.Wrap(err, "manifest prune failed")
	}

	m.console.Success("Removed %d stale entr(ies)", removed)
	m.waitForUserInput("\nPress Enter to continue...")
	return nil
}

func (m *Menu) waitForUserInput(prompt string) {
	m.console.WriteLine("%s", prompt)
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}
