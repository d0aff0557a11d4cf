package stopwords

import (
	"embed"
	"sort"
	"strings"
)

//go:embed data/*.txt
var bundledFS embed.FS

// Bundled returns the word list compiled into the binary for lang.
func Bundled(lang string) ([]string, bool) {
	data, err := bundledFS.ReadFile("data/" + strings.ToLower(lang) + ".txt")
	if err != nil {
		return nil, false
	}
	return ParseList(string(data)), true
}

// BundledLanguages lists the languages with a compiled-in word list.
func BundledLanguages() []string {
	entries, err := bundledFS.ReadDir("data")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(langs)
	return langs
}
