package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SnakeToTitle turns "mail_kit_order" into "Mail Kit Order". Only the first
// letter of each word changes.
func SnakeToTitle(s string) string {
	caser := cases.Title(language.English, cases.NoLower)
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
