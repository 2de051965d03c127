package tui

import (
	"fmt"
	"strings"

	"presskit/runner"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	if m.GatewayURL != "" {
		b.WriteString(InfoStyle.Render("🌐 Gateway: " + m.GatewayURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Inputs
	b.WriteString(m.renderInput(TextURLLabel, m.URLInput, TextURLPlaceholder, m.Focus == FieldURL))
	b.WriteString("\n")
	b.WriteString(m.renderInput(TextGuidanceLabel, m.GuidanceInput, TextGuidancePlaceholder, m.Focus == FieldGuidance))
	b.WriteString("\n\n")

	// Status
	if status := m.statusLine(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if m.Notice != "" {
		b.WriteString(WarningStyle.Render(m.Notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Results
	b.WriteString(LabelStyle.Render(TextHeadlines))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(m.renderHeadlines()))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render(TextPressRelease))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(m.renderDocument()))
	b.WriteString("\n\n")

	if m.Snapshot.Busy() {
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterIdle))
	}

	return b.String()
}

func (m Model) renderInput(label, value, placeholder string, focused bool) string {
	content := value
	if content == "" {
		content = InfoStyle.Render(placeholder)
	}
	if focused {
		content += "▌"
		return LabelStyle.Render(label) + "\n" + FocusedBoxStyle.Render(content)
	}
	return LabelStyle.Render(label) + "\n" + BoxStyle.Render(content)
}

// statusLine colours the controller message by outcome
func (m Model) statusLine() string {
	s := m.Snapshot
	switch s.Status {
	case runner.StatusRunning:
		return InfoStyle.Render("⏳ " + s.Message)
	case runner.StatusSucceeded:
		return StatusStyle.Render("✅ " + s.Message)
	case runner.StatusFailed:
		if s.Failure == runner.FailureNetwork {
			return WarningStyle.Render("⚠️ " + s.Message)
		}
		return ErrorStyle.Render("❌ " + s.Message)
	default:
		return ""
	}
}

func (m Model) renderHeadlines() string {
	if len(m.Snapshot.Titles) == 0 {
		return InfoStyle.Render(TextHeadlinesEmpty)
	}
	lines := make([]string, len(m.Snapshot.Titles))
	for i, t := range m.Snapshot.Titles {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDocument() string {
	if m.Snapshot.Document == "" {
		return InfoStyle.Render(TextPressReleaseEmpty)
	}
	return m.Snapshot.Document
}
