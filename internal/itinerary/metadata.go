package itinerary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseMetadata turns a multi-line description into fields.
//
// Every line containing a colon is split at its first colon. The key is
// split on whitespace, each word title-cased, and the words joined
// ("meeting room" -> "MeetingRoom"); the value is the trimmed rest of the
// line, further colons included. Lines without a colon or with a blank key
// are ignored, and a later line wins on key collision.
func ParseMetadata(text string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name := fieldName(key)
		if name == "" {
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}
	return fields
}

func fieldName(key string) string {
	var b strings.Builder
	for _, word := range strings.Fields(key) {
		b.WriteString(titleCase(word))
	}
	return b.String()
}

// titleCase upper-cases the first rune of word and lower-cases the rest.
func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
