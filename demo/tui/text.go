package tui

// UI Text Constants
const (
	TextTitle               = "📰 AI Press Release Tool"
	TextURLLabel            = "YouTube URL"
	TextGuidanceLabel       = "Optional prompt / guidance"
	TextURLPlaceholder      = "https://www.youtube.com/watch?v=VIDEO_ID"
	TextGuidancePlaceholder = "Tone, audience, must-include points…"

	TextHeadlines         = "Suggested Headlines"
	TextHeadlinesEmpty    = "Headlines will appear here after you run the pipeline."
	TextPressRelease      = "Press Release"
	TextPressReleaseEmpty = "Press release will appear here…"

	TextBusy = "A run is already in progress."

	// Footer
	TextFooterIdle    = "enter: run pipeline | tab: switch field | ctrl+l: clear | esc: quit"
	TextFooterRunning = "run in progress… | ctrl+l: clear | esc: quit"
)
