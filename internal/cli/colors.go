package cli

import "os"

// palette holds ANSI sequences. The zero value prints plain text.
type palette struct {
	Reset, Red, Green, Yellow, Blue, Cyan, Bold string
}

var ansi = palette{
	Reset:  "\033[0m",
	Red:    "\033[31m",
	Green:  "\033[32m",
	Yellow: "\033[33m",
	Blue:   "\033[34m",
	Cyan:   "\033[36m",
	Bold:   "\033[1m",
}

// ColorsEnabled reports whether stdout looks like a colour terminal.
func ColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func scoreColor(c palette, ratio float64) string {
	switch {
	case ratio >= 0.9:
		return c.Green
	case ratio >= 0.7:
		return c.Yellow
	default:
		return c.Red
	}
}
