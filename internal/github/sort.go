package github

import (
	"sort"

	"github.com/h2non/filetype"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sniffLen - сколько байт нужно filetype для определения формата.
const sniffLen = 262

// SortEntries возвращает копию листинга: сначала директории, затем файлы,
// внутри групп - по имени с учётом локали. Порядок равных элементов сохраняется.
func SortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	// Collator не потокобезопасен
	coll := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
	return sorted
}

// FileKind определяет бинарные форматы по сигнатуре.
// Для текста и неизвестных форматов возвращает text/plain и false.
func FileKind(content []byte) (mimeType string, binary bool) {
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "text/plain; charset=utf-8", false
	}
	return kind.MIME.Value, true
}
