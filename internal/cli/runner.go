package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rl1809/inventory-tracker/internal/adapter/tui"
	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// Runner dispatches subcommands against an inventory, local or remote.
type Runner struct {
	Inventory tui.Inventory
	Out       io.Writer
	Err       io.Writer

	// Interactive starts the terminal UI; replaced in tests.
	Interactive func(ctx context.Context, inv tui.Inventory) error
}

// Run returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0

	case "ls":
		return r.doList(ctx, strings.Join(a, " "))

	case "add":
		if len(a) == 0 {
			r.fail("usage: inventory add <name...>")
			return 2
		}
		return r.doMutate(ctx, "add", strings.Join(a, " "))

	case "rm":
		if len(a) == 0 {
			r.fail("usage: inventory rm <name...>")
			return 2
		}
		return r.doMutate(ctx, "rm", strings.Join(a, " "))

	case "tui":
		interactive := r.Interactive
		if interactive == nil {
			interactive = tui.Run
		}
		if err := interactive(ctx, r.Inventory); err != nil {
			r.fail("tui: " + err.Error())
			return 1
		}
		return 0
	}

	r.fail("unknown subcommand: " + cmd)
	r.PrintHelp()
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.Out, `inventory - track item counts

Usage:
  inventory [flags] <subcommand> [args]

Subcommands:
  ls [query]        List items, optionally filtered by name
  add <name...>     Add one of an item, creating it if needed
  rm <name...>      Remove one of an item, deleting it at zero
  tui               Interactive terminal UI

Examples:
  inventory add "Paper towels"
  inventory ls paper
  inventory rm "Paper towels"
`)
}

func (r *Runner) doList(ctx context.Context, query string) int {
	state := view.NewState()
	items, err := r.Inventory.List(ctx)
	if err := state.Sync(items, err); err != nil {
		r.fail("list: " + err.Error())
		return 1
	}
	state.SetQuery(query)

	r.panel(state.Visible(), len(state.Items()), query)
	return 0
}

func (r *Runner) doMutate(ctx context.Context, op, name string) int {
	fn := r.Inventory.Increment
	if op == "rm" {
		fn = r.Inventory.Decrement
	}

	items, err := fn(ctx, name)
	if err != nil {
		r.fail(op + ": " + err.Error())
		return 1
	}

	for _, it := range items {
		if it.Name == name {
			r.ok(fmt.Sprintf("%s: %d", it.DisplayName(), it.Quantity))
			return 0
		}
	}
	r.ok(domain.Item{Name: name}.DisplayName() + ": none left")
	return 0
}

func (r *Runner) panel(items []domain.Item, total int, query string) {
	domain.SortByName(items)

	header := fmt.Sprintf("%s  %d items", titleStyle.Render("Inventory Items"), total)
	if query != "" {
		header += mutedStyle.Render(fmt.Sprintf("  (%d matching %q)", len(items), query))
	}

	lines := []string{header, ""}
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("No items"))
	}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%-30s %d", it.DisplayName(), it.Quantity))
	}
	fmt.Fprintln(r.Out, panelStyle.Render(strings.Join(lines, "\n")))
}

func (r *Runner) ok(msg string) {
	fmt.Fprintln(r.Out, successStyle.Render("✔ "+msg))
}

func (r *Runner) fail(msg string) {
	fmt.Fprintln(r.Err, errorStyle.Render("✖ "+msg))
}
