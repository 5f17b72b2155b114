package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgInvalidBody     = "invalid request body"
	msgTickerRequired  = "ticker required"
	msgNoData          = "no data found for %s"
	msgNoResults       = "no results for the applied filters"
	msgUpstream        = "upstream provider error"
	msgInternal        = "internal server error"
	msgHistoryDisabled = "scan history is disabled"
	msgInvalidLimit    = "limit must be between 1 and 100"
)

var supportedLangs = []language.Tag{language.English, language.Italian}

var langMatcher = language.NewMatcher(supportedLangs)

func init() {
	it := map[string]string{
		msgInvalidBody:     "Corpo della richiesta non valido",
		msgTickerRequired:  "Ticker richiesto",
		msgNoData:          "Nessun dato trovato per %s",
		msgNoResults:       "Nessun risultato trovato con i filtri applicati",
		msgUpstream:        "Errore del fornitore dati",
		msgInternal:        "Errore interno server",
		msgHistoryDisabled: "Storico scansioni disabilitato",
		msgInvalidLimit:    "limit deve essere compreso tra 1 e 100",
	}
	for key, text := range it {
		_ = message.SetString(language.Italian, key, text)
		_ = message.SetString(language.English, key, key)
	}
}

// matchLang maps a language preference onto a supported tag, or returns
// fallback when nothing matches.
func matchLang(fallback language.Tag, prefs ...language.Tag) language.Tag {
	if len(prefs) == 0 {
		return fallback
	}
	_, idx, conf := langMatcher.Match(prefs...)
	if conf == language.No {
		return fallback
	}
	return supportedLangs[idx]
}

// parseDefaultLang resolves the configured default language. Unknown
// values fall back to English.
func parseDefaultLang(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return matchLang(language.English, tag)
}

// printer returns a message printer for the request's Accept-Language.
func (h *Handler) printer(c *gin.Context) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil {
		tags = nil
	}
	return message.NewPrinter(matchLang(h.lang, tags...))
}
