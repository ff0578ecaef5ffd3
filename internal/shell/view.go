package shell

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/devlog/internal/index"
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/internal/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

//go:embed templates/help.tmpl
var helpTemplate string

//go:embed templates/command.tmpl
var commandTemplate string

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var templates = template.Must(
	template.New("help").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"section": func(s string) string { return sectionStyle.Render(s) },
			"key":     func(s string) string { return keyStyle.Render(s) },
			"subtle":  func(s string) string { return subtleStyle.Render(s) },
		}).
		Parse(helpTemplate),
)

func init() {
	template.Must(templates.New("command").Parse(commandTemplate))
}

// helpEntry is the template view of a command
type helpEntry struct {
	Name    string
	Aliases []string
	Summary string
	Usage   string
	Flags   []string
}

func newHelpEntry(cmd registry.Command) helpEntry {
	e := helpEntry{
		Name:    cmd.Name,
		Aliases: cmd.Aliases,
		Summary: cmd.Summary(),
		Flags:   cmd.Hints,
	}
	for _, line := range strings.Split(cmd.Help, "\n") {
		if usage, ok := strings.CutPrefix(strings.TrimSpace(line), "Usage:"); ok {
			e.Usage = strings.TrimSpace(usage)
		}
	}
	return e
}

// renderHelp lists every command
func renderHelp(commands []registry.Command) (string, error) {
	entries := make([]helpEntry, 0, len(commands))
	for _, cmd := range commands {
		entries = append(entries, newHelpEntry(cmd))
	}
	return execute("help", map[string]any{"Commands": entries})
}

// renderCommandHelp details one command
func renderCommandHelp(cmd registry.Command) (string, error) {
	return execute("command", newHelpEntry(cmd))
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// indexedFile pairs an index entry with its ordinal
type indexedFile struct {
	Pos   int
	Entry index.Entry
}

// renderIndex lists indexed files with their ordinals
func renderIndex(files []indexedFile, detailed bool) string {
	if len(files) == 0 {
		return subtleStyle.Render("No files indexed. Use 'add <path>' to add some.")
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Indexed files (%d):", len(files))) + "\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("   %s %s %s",
			keyStyle.Render(fmt.Sprintf("%3d", f.Pos)),
			valueStyle.Render(f.Entry.DisplayName()),
			subtleStyle.Render(humanSize(f.Entry.Size))))
		if detailed {
			b.WriteString("\n       " + subtleStyle.Render(f.Entry.Path))
			b.WriteString("\n       " + subtleStyle.Render("modified "+f.Entry.ModTime.Format(time.DateTime)))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderResults prints records as an aligned table
func renderResults(records []session.Record, total int, showConfidence bool) string {
	if len(records) == 0 {
		return subtleStyle.Render("No matching results.")
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Results (%d of %d):", len(records), total)) + "\n")
	for i, r := range records {
		line := fmt.Sprintf("   %s %s %s",
			keyStyle.Render(fmt.Sprintf("%3d", i)),
			valueStyle.Render(pad(r.String("event"), 16)),
			statusStyle(r.String("status")).Render(pad(r.String("status"), 8)))
		if showConfidence {
			if conf, ok := confidence(r); ok {
				line += " " + subtleStyle.Render(fmt.Sprintf("%5.1f%%", conf*100))
			}
		}
		if msg := r.String("message"); msg != "" {
			line += " " + subtleStyle.Render(runewidth.Truncate(msg, 60, "…"))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderConfig prints the settings in key order
func renderConfig(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Settings:") + "\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("   %s %s\n", keyStyle.Render(pad(k, 16)), valueStyle.Render(fmt.Sprint(values[k]))))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderCounts prints a tally section
func renderCounts(title string, keys []string, counts map[string]int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title) + "\n")
	if len(keys) == 0 {
		b.WriteString("   " + subtleStyle.Render("none"))
		return b.String()
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("   %s %d\n", statusStyle(k).Render(pad(k, 16)), counts[k]))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "success":
		return successStyle
	case "warning":
		return warningStyle
	case "failed":
		return errorStyle
	default:
		return valueStyle
	}
}

func successLine(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func warningLine(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}

func errorLine(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// pad right-pads s to width display columns
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
