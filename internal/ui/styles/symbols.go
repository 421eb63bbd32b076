package styles

// Status symbols for doctor and status output.
const (
	SymbolOK   = "✓"
	SymbolWarn = "!"
	SymbolFail = "✗"
)

// OK renders text behind a green check.
func OK(text string) string {
	return SuccessStyle.Render(SymbolOK) + " " + text
}

// Warn renders text behind a warning marker.
func Warn(text string) string {
	return WarningStyle.Render(SymbolWarn) + " " + text
}

// Fail renders text behind a red cross.
func Fail(text string) string {
	return ErrorStyle.Render(SymbolFail) + " " + text
}
