package main

import (
	"bufio"
	"fmt"
	"goforeigner/internal/diag"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	positionStyle = lipgloss.NewStyle().Bold(true)
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ui writes command output. Diagnostics are styled only when stderr is a
// terminal, and prompts are only shown when stdin is one.
type ui struct {
	mu          sync.Mutex
	out         io.Writer
	errOut      io.Writer
	in          io.Reader
	interactive bool
	styled      bool
}

func newUI(cmd *cobra.Command) *ui {
	u := &ui{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		in:     cmd.InOrStdin(),
	}
	u.interactive = isTerminal(u.in)
	u.styled = isTerminal(u.errOut)
	return u
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (u *ui) Printf(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.out, format, args...)
}

// Error prints every diagnostic carried by err, then a summary line unless
// err is itself a diagnostic.
func (u *ui) Error(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	diags := diag.All(err)
	for _, d := range diags {
		_, _ = fmt.Fprintln(u.errOut, u.formatDiagnostic(d))
	}
	switch err.(type) {
	case *diag.Diagnostic, diag.List:
		if len(diags) > 0 {
			return
		}
	}
	_, _ = fmt.Fprintln(u.errOut, u.style(summaryStyle, "error: "+err.Error()))
}

func (u *ui) formatDiagnostic(d *diag.Diagnostic) string {
	message := d.Message
	if d.Err != nil {
		message += ": " + d.Err.Error()
	}
	return fmt.Sprintf("%s: %s: %s", u.style(positionStyle, d.Pos.String()), u.style(kindStyle, string(d.Kind)), message)
}

func (u *ui) style(style lipgloss.Style, text string) string {
	if !u.styled {
		return text
	}
	return style.Render(text)
}

// Confirm asks a yes/no question on stderr and reads the answer from stdin.
func (u *ui) Confirm(prompt string) bool {
	u.mu.Lock()
	_, _ = fmt.Fprint(u.errOut, prompt)
	u.mu.Unlock()

	answer, _ := bufio.NewReader(u.in).ReadString('\n')
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "Y", "YES":
		return true
	}
	return false
}

// Table renders rows under header to the command output.
func (u *ui) Table(header []string, rows [][]string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	table := tablewriter.NewWriter(u.out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.AppendBulk(rows)
	table.Render()
}
