// Package reference parses biblical citations and normalizes book names.
package reference

import "sort"

// Books is an immutable alias table mapping localized book spellings to a canonical key.
// Construct it once with NewBooks or DefaultBooks and share it by pointer.
type Books struct {
	aliases map[string]string
	// ordered longest alias first, so "1 Juan" wins over "Juan" when building patterns
	names     []string
	canonical []string
}

// NewBooks builds a table from alias → canonical pairs. Canonical names are
// always registered as aliases of themselves. The input map is copied.
func NewBooks(aliases map[string]string) *Books {
	b := &Books{aliases: make(map[string]string, len(aliases))}
	seen := make(map[string]bool)
	for alias, canonical := range aliases {
		b.aliases[alias] = canonical
		if !seen[canonical] {
			seen[canonical] = true
			b.canonical = append(b.canonical, canonical)
		}
	}
	for _, canonical := range b.canonical {
		if _, ok := b.aliases[canonical]; !ok {
			b.aliases[canonical] = canonical
		}
	}
	for alias := range b.aliases {
		b.names = append(b.names, alias)
	}
	sort.Slice(b.names, func(i, j int) bool {
		if len(b.names[i]) != len(b.names[j]) {
			return len(b.names[i]) > len(b.names[j])
		}
		return b.names[i] < b.names[j]
	})
	sort.Strings(b.canonical)
	return b
}

// Normalize returns the canonical form of name. Matching is exact and case-sensitive;
// unknown names are returned unchanged.
func (b *Books) Normalize(name string) string {
	if b == nil {
		return name
	}
	if canonical, ok := b.aliases[name]; ok {
		return canonical
	}
	return name
}

// Known reports whether name is an alias (or canonical name) in the table.
func (b *Books) Known(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.aliases[name]
	return ok
}

// Names returns every alias, longest first.
func (b *Books) Names() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.names...)
}

// Canonical returns the sorted list of canonical book keys.
func (b *Books) Canonical() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.canonical...)
}

var defaultBooks = NewBooks(map[string]string{
	// Old Testament
	"Génesis": "Genesis", "Genesis": "Genesis",
	"Éxodo": "Exodus", "Exodo": "Exodus", "Exodus": "Exodus",
	"Levítico": "Leviticus", "Levitico": "Leviticus",
	"Números": "Numbers", "Numeros": "Numbers",
	"Deuteronomio": "Deuteronomy",
	"Josué": "Joshua", "Josue": "Joshua",
	"Jueces": "Judges",
	"Rut": "Ruth", "Ruth": "Ruth",
	"1 Samuel": "1 Samuel", "2 Samuel": "2 Samuel",
	"1 Reyes": "1 Kings", "2 Reyes": "2 Kings",
	"1 Crónicas": "1 Chronicles", "2 Crónicas": "2 Chronicles",
	"Esdras": "Ezra", "Nehemías": "Nehemiah", "Nehemias": "Nehemiah",
	"Tobías": "Tobit", "Tobias": "Tobit",
	"Judit": "Judith", "Judith": "Judith",
	"Ester": "Esther", "Esther": "Esther",
	"Job": "Job",
	"Salmos": "Psalms", "Salmo": "Psalms", "Psalm": "Psalms", "Psalms": "Psalms",
	"Proverbios": "Proverbs",
	"Eclesiastés": "Ecclesiastes", "Eclesiastes": "Ecclesiastes",
	"Cantar de los Cantares": "Song of Solomon", "Cantar": "Song of Solomon",
	"Sabiduría": "Wisdom", "Sabiduria": "Wisdom", "Wisdom": "Wisdom",
	"Eclesiástico": "Sirach", "Eclesiastico": "Sirach", "Sirach": "Sirach",
	"Isaías": "Isaiah", "Isaias": "Isaiah", "Isaiah": "Isaiah",
	"Jeremías": "Jeremiah", "Jeremias": "Jeremiah",
	"Lamentaciones": "Lamentations",
	"Baruc": "Baruch", "Baruch": "Baruch",
	"Ezequiel": "Ezekiel",
	"Daniel": "Daniel",
	"Oseas": "Hosea",
	"Joel": "Joel",
	"Amós": "Amos", "Amos": "Amos",
	"Abdías": "Obadiah", "Abdias": "Obadiah",
	"Jonás": "Jonah", "Jonas": "Jonah",
	"Miqueas": "Micah",
	"Nahún": "Nahum", "Nahum": "Nahum",
	"Habacuc": "Habakkuk",
	"Sofonías": "Zephaniah", "Sofonias": "Zephaniah",
	"Ageo": "Haggai",
	"Zacarías": "Zechariah", "Zacarias": "Zechariah",
	"Malaquías": "Malachi", "Malaquias": "Malachi",
	// New Testament
	"Mateo": "Matthew", "Matthew": "Matthew",
	"Marcos": "Mark", "Mark": "Mark",
	"Lucas": "Luke", "Luke": "Luke",
	"Juan": "John", "John": "John",
	"Hechos": "Acts", "Acts": "Acts",
	"Romanos": "Romans", "Romans": "Romans",
	"1 Corintios": "1 Corinthians", "2 Corintios": "2 Corinthians",
	"Gálatas": "Galatians", "Galatas": "Galatians",
	"Efesios": "Ephesians",
	"Filipenses": "Philippians",
	"Colosenses": "Colossians",
	"1 Tesalonicenses": "1 Thessalonians", "2 Tesalonicenses": "2 Thessalonians",
	"1 Timoteo": "1 Timothy", "2 Timoteo": "2 Timothy",
	"Tito": "Titus",
	"Filemón": "Philemon", "Filemon": "Philemon",
	"Hebreos": "Hebrews", "Hebrews": "Hebrews",
	"Santiago": "James", "James": "James",
	"1 Pedro": "1 Peter", "2 Pedro": "2 Peter",
	"1 Juan": "1 John", "2 Juan": "2 John", "3 Juan": "3 John",
	"Judas": "Jude",
	"Apocalipsis": "Revelation", "Revelation": "Revelation",
})

// DefaultBooks returns the built-in Spanish/English table. Canonical keys are English
// so that lectionary citations unify with Spanish corpus headings.
func DefaultBooks() *Books {
	return defaultBooks
}

// NewTestament lists the canonical New Testament books in canonical order.
var NewTestament = []string{
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans",
	"1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews",
	"James", "1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}
