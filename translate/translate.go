// Package translate renders the simulator's diagnostics for the language of
// the user's environment. Keys are en-US fmt patterns; a key with no catalog
// entry is formatted as is.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

const defaultLocale = "en-US"

var printer = newPrinter()

func newPrinter() *message.Printer {
	tags, err := locale.GetLocales()
	if err != nil {
		log.Printf("lc3-sim: detecting locale: %v", err)
	}
	if len(tags) == 0 {
		tags = []string{defaultLocale}
	}
	return message.NewPrinter(message.MatchLanguage(tags...))
}

// From formats key with args for the detected locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
