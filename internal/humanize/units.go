package humanize

// units are the relative-time words of one language. Plural forms take
// the count through fmt.
type units struct {
	fewSeconds string
	minute     string
	minutes    string
	hour       string
	hours      string
	day        string
	days       string
	month      string
	months     string
	year       string
	years      string
}

var unitWords = map[string]units{
	"en": {
		fewSeconds: "a few seconds",
		minute: "a minute", minutes: "%d minutes",
		hour: "an hour", hours: "%d hours",
		day: "a day", days: "%d days",
		month: "a month", months: "%d months",
		year: "a year", years: "%d years",
	},
	"pt": {
		fewSeconds: "poucos segundos",
		minute: "um minuto", minutes: "%d minutos",
		hour: "uma hora", hours: "%d horas",
		day: "um dia", days: "%d dias",
		month: "um mês", months: "%d meses",
		year: "um ano", years: "%d anos",
	},
	"es": {
		fewSeconds: "unos segundos",
		minute: "un minuto", minutes: "%d minutos",
		hour: "una hora", hours: "%d horas",
		day: "un día", days: "%d días",
		month: "un mes", months: "%d meses",
		year: "un año", years: "%d años",
	},
	"fr": {
		fewSeconds: "quelques secondes",
		minute: "une minute", minutes: "%d minutes",
		hour: "une heure", hours: "%d heures",
		day: "un jour", days: "%d jours",
		month: "un mois", months: "%d mois",
		year: "un an", years: "%d ans",
	},
	"de": {
		fewSeconds: "ein paar Sekunden",
		minute: "eine Minute", minutes: "%d Minuten",
		hour: "eine Stunde", hours: "%d Stunden",
		day: "ein Tag", days: "%d Tage",
		month: "ein Monat", months: "%d Monate",
		year: "ein Jahr", years: "%d Jahre",
	},
	"it": {
		fewSeconds: "alcuni secondi",
		minute: "un minuto", minutes: "%d minuti",
		hour: "un'ora", hours: "%d ore",
		day: "un giorno", days: "%d giorni",
		month: "un mese", months: "%d mesi",
		year: "un anno", years: "%d anni",
	},
	"nl": {
		fewSeconds: "een paar seconden",
		minute: "één minuut", minutes: "%d minuten",
		hour: "één uur", hours: "%d uur",
		day: "één dag", days: "%d dagen",
		month: "één maand", months: "%d maanden",
		year: "één jaar", years: "%d jaar",
	},
}
