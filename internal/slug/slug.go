// Package slug строит URL-безопасные идентификаторы из названий навыков.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Пробелы, подчёркивания и слэши заменяются дефисом.
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Всё, что не [a-z0-9-], удаляется.
	nonSlugRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Несколько дефисов подряд.
	multipleDashRe = regexp.MustCompile(`-+`)

	pinyinArgs = pinyin.NewArgs()
)

// Derive детерминированно превращает название в slug.
//
// Правила:
//  1. Иероглифы заменяются слогами пиньинь, каждый слог - отдельное слово
//  2. Диакритика латиницы снимается (é -> e)
//  3. Нижний регистр, разделители -> дефис
//  4. Удаляется всё вне [a-z0-9-], дефисы схлопываются и обрезаются по краям
//
// Примеры:
//
//	"PDF Processing"  → "pdf-processing"
//	"Café Menu"       → "cafe-menu"
//	"文档 助手"         → "wen-dang-zhu-shou"
//	"--MCP__builder--" → "mcp-builder"
func Derive(name string) string {
	s := transliterate(name)
	s = stripMarks(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// transliterate заменяет иероглифы пиньинем, окружая слоги пробелами.
func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
			continue
		}
		syllables := pinyin.SinglePinyin(r, pinyinArgs)
		if len(syllables) == 0 {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(syllables[0])
		b.WriteByte(' ')
	}
	return b.String()
}

// stripMarks снимает диакритические знаки через NFD-разложение.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
