package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

var loader *spinner.Spinner

// StartSpinner starts the CLI loading spinner on stderr. It does nothing when
// stderr is not a terminal so redirected diagnostics stay clean.
func StartSpinner(suffix string) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
}

// UpdateSpinner replaces the spinner suffix if it is running.
func UpdateSpinner(suffix string) {
	if loader != nil {
		loader.Lock()
		loader.Suffix = " " + suffix
		loader.Unlock()
	}
}

// StopSpinner stops the CLI loading spinner.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
