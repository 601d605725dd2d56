// Package message prints user-facing CLI output, separate from the
// structured log stream.
package message

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	quiet     bool
	noColor   bool
	mutex     sync.RWMutex
	outWriter io.Writer = os.Stdout

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	sectionColor = color.New(color.FgHiMagenta, color.Bold)
)

// SetQuiet suppresses info, success and section output.
func SetQuiet(q bool) {
	mutex.Lock()
	defer mutex.Unlock()
	quiet = q
}

// SetNoColor enables/disables colored output
func SetNoColor(nc bool) {
	mutex.Lock()
	defer mutex.Unlock()
	noColor = nc
	color.NoColor = nc
}

// SetOutput changes the output writer (useful for testing)
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	outWriter = w
}

func printf(c *color.Color, prefix, format string, args ...interface{}) {
	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(outWriter, "%s%s\n", prefix, msg)
	} else {
		c.Fprintf(outWriter, "%s%s\n", prefix, msg)
	}
}

func isQuiet() bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return quiet
}

func Info(format string, args ...interface{}) {
	if isQuiet() {
		return
	}
	printf(infoColor, "[*] ", format, args...)
}

func Success(format string, args ...interface{}) {
	if isQuiet() {
		return
	}
	printf(successColor, "[+] ", format, args...)
}

// Warning is printed even in quiet mode.
func Warning(format string, args ...interface{}) {
	printf(warningColor, "[!] ", format, args...)
}

// Error is printed even in quiet mode.
func Error(format string, args ...interface{}) {
	printf(errorColor, "[-] ", format, args...)
}

func Section(format string, args ...interface{}) {
	if isQuiet() {
		return
	}
	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(outWriter, "\n-=[%s]=-\n\n", msg)
	} else {
		sectionColor.Fprintf(outWriter, "\n-=[%s]=-\n\n", msg)
	}
}

// Emphasize returns a string with bold formatting
func Emphasize(s string) string {
	mutex.RLock()
	defer mutex.RUnlock()
	if noColor {
		return s
	}
	return color.New(color.Bold).Sprint(s)
}
