package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

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

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderSettings(data),
		renderIndex(data),
		renderHistory(data),
		renderCommands(data),
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	return titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version)
}

func renderSettings(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Settings:") + "\n")
	b.WriteString("   " + keyStyle.Render("Directory: ") + subtleStyle.Render(data.ConfigDir) + "\n")

	if data.ConfigPath == "" {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render("none (built-in defaults)"))
	} else if data.ConfigValid() {
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + " " + successStyle.Render("✓"))
	} else {
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + " " +
			errorStyle.Render("✗") + subtleStyle.Render(" (defaults in use)"))
		for _, e := range data.ConfigErrors {
			b.WriteString("\n      " + warningStyle.Render(fmt.Sprintf("[%s] %s", e.Field, e.Message)))
		}
	}

	s := data.Settings
	b.WriteString("\n   " + keyStyle.Render("Max display: ") + valueStyle.Render(fmt.Sprint(s.MaxDisplay)))
	b.WriteString("\n   " + keyStyle.Render("Show confidence: ") + valueStyle.Render(fmt.Sprint(s.ShowConfidence)))
	b.WriteString("\n   " + keyStyle.Render("Log level: ") + valueStyle.Render(s.LogLevel))

	return b.String()
}

func renderIndex(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🗂  Index:") + "\n")
	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(data.Index.Path) + "\n")

	if data.Index.Size == 0 {
		b.WriteString("   " + subtleStyle.Render("No files indexed yet"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Files: ") + valueStyle.Render(fmt.Sprint(data.Index.TotalEntries)))
	b.WriteString(" " + subtleStyle.Render(fmt.Sprintf("(%s)", formatBytes(data.Index.Size))))
	if data.Index.Missing > 0 {
		b.WriteString("\n   " + warningStyle.Render(fmt.Sprintf("%d indexed file(s) no longer exist", data.Index.Missing)))
	}
	return b.String()
}

func renderHistory(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕘 History:") + "\n")
	b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render(data.Settings.HistoryFile) + "\n")
	b.WriteString("   " + keyStyle.Render("Entries: ") + valueStyle.Render(fmt.Sprint(data.HistoryEntries)))
	return b.String()
}

func renderCommands(data *Data) string {
	return sectionStyle.Render("⌨️  Commands: ") +
		valueStyle.Render(fmt.Sprintf("%d commands, %d aliases", data.Commands, data.Aliases))
}

// formatBytes formats bytes into human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
