package theme

// Font selection names stored under FONT.
const (
	FontMonospace = "Monospace"
	FontSans      = "Sans"
	FontSerif     = "Serif"
	FontTerminal  = "Terminal"
	FontCustom    = "Custom"
)

// CustomFontFamily is the family name given to an uploaded font.
const CustomFontFamily = "HQCustom"

var fontStacks = map[string]string{
	FontMonospace: `"Courier New", Courier, monospace`,
	FontSans:      `"Helvetica Neue", Helvetica, Arial, sans-serif`,
	FontSerif:     `Georgia, "Times New Roman", serif`,
	FontTerminal:  `"VT323", "Lucida Console", "Courier New", monospace`,
}

// FontNames lists the selectable font names.
func FontNames() []string {
	return []string{FontMonospace, FontSans, FontSerif, FontTerminal, FontCustom}
}

// FontStack returns the CSS font-family list for a font selection. The
// custom family is put first whenever an uploaded font is available.
func FontStack(name string, haveCustom bool) string {
	stack, ok := fontStacks[name]
	if !ok {
		stack = fontStacks[FontMonospace]
	}
	if haveCustom {
		return `"` + CustomFontFamily + `", ` + stack
	}
	return stack
}
