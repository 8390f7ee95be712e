package tui

// Color constants for punchcard TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (titles, values)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Title, accent elements
	ColorAccentBright = "#A78BFA" // Highlights, selected row

	// Attendance status colors
	ColorPresent = "#22C55E" // Full day
	ColorHalfDay = "#F59E0B" // Half day
	ColorAbsent  = "#EF4444" // Absent
	ColorPending = "#6D7383" // Date not yet passed
)
