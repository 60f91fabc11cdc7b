// Package translate formats user-visible messages in the user's language.
//
// Message keys are en-US Sprintf() formats. Keys without a catalogue entry
// for the selected language are formatted as-is.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported languages, in order of preference when nothing matches.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.Russian,
}

var printer *message.Printer

func init() {
	for tag, entries := range catalogue {
		for key, msg := range entries {
			if err := message.SetString(tag, key, msg); err != nil {
				log.Printf("msp16: catalogue %v: %v", tag, err)
			}
		}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("msp16: locale: %v", err)
	}

	printer = message.NewPrinter(Match(locales...))
}

// Match returns the supported language that best fits the locales.
func Match(locales ...string) language.Tag {
	if len(locales) == 0 {
		return supported[0]
	}

	tag, _ := language.MatchStrings(language.NewMatcher(supported), locales...)
	base, _ := tag.Base()
	for _, sup := range supported {
		sup_base, _ := sup.Base()
		if base == sup_base {
			return sup
		}
	}

	return supported[0]
}

// Printer returns a message printer for a specific language.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
