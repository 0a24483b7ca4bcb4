package ocr

// Language identifies a recognition language model by its traineddata code.
type Language string

// DefaultLanguage is the baseline model used when no selection is made.
const DefaultLanguage Language = "eng"

// LanguageInfo pairs a language code with its human-readable name for
// building picker UIs.
type LanguageInfo struct {
	Code Language
	Name string
}

// languageCatalog is the fixed set of selectable recognition languages,
// ordered with the default first and the rest alphabetically by code.
var languageCatalog = []LanguageInfo{
	{"eng", "English"},
	{"afr", "Afrikaans"},
	{"amh", "Amharic"},
	{"ara", "Arabic"},
	{"asm", "Assamese"},
	{"aze", "Azerbaijani"},
	{"bel", "Belarusian"},
	{"ben", "Bengali"},
	{"bod", "Tibetan"},
	{"bos", "Bosnian"},
	{"bul", "Bulgarian"},
	{"cat", "Catalan"},
	{"ceb", "Cebuano"},
	{"ces", "Czech"},
	{"chi_sim", "Chinese (Simplified)"},
	{"chi_tra", "Chinese (Traditional)"},
	{"chr", "Cherokee"},
	{"cym", "Welsh"},
	{"dan", "Danish"},
	{"deu", "German"},
	{"dzo", "Dzongkha"},
	{"ell", "Greek"},
	{"enm", "English (Middle)"},
	{"epo", "Esperanto"},
	{"est", "Estonian"},
	{"eus", "Basque"},
	{"fas", "Persian"},
	{"fin", "Finnish"},
	{"fra", "French"},
	{"frk", "German (Fraktur)"},
	{"frm", "French (Middle)"},
	{"gle", "Irish"},
	{"glg", "Galician"},
	{"grc", "Greek (Ancient)"},
	{"guj", "Gujarati"},
	{"hat", "Haitian"},
	{"heb", "Hebrew"},
	{"hin", "Hindi"},
	{"hrv", "Croatian"},
	{"hun", "Hungarian"},
	{"iku", "Inuktitut"},
	{"ind", "Indonesian"},
	{"isl", "Icelandic"},
	{"ita", "Italian"},
	{"ita_old", "Italian (Old)"},
	{"jav", "Javanese"},
	{"jpn", "Japanese"},
	{"kan", "Kannada"},
	{"kat", "Georgian"},
	{"kat_old", "Georgian (Old)"},
	{"kaz", "Kazakh"},
	{"khm", "Khmer"},
	{"kir", "Kirghiz"},
	{"kor", "Korean"},
	{"kur", "Kurdish"},
	{"lao", "Lao"},
	{"lat", "Latin"},
	{"lav", "Latvian"},
	{"lit", "Lithuanian"},
	{"mal", "Malayalam"},
	{"mar", "Marathi"},
	{"mkd", "Macedonian"},
	{"mlt", "Maltese"},
	{"msa", "Malay"},
	{"mya", "Burmese"},
	{"nep", "Nepali"},
	{"nld", "Dutch"},
	{"nor", "Norwegian"},
	{"ori", "Oriya"},
	{"pan", "Punjabi"},
	{"pol", "Polish"},
	{"por", "Portuguese"},
	{"pus", "Pashto"},
	{"ron", "Romanian"},
	{"rus", "Russian"},
	{"san", "Sanskrit"},
	{"sin", "Sinhala"},
	{"slk", "Slovak"},
	{"slv", "Slovenian"},
	{"spa", "Spanish"},
	{"spa_old", "Spanish (Old)"},
	{"sqi", "Albanian"},
	{"srp", "Serbian"},
	{"srp_latn", "Serbian (Latin)"},
	{"swa", "Swahili"},
	{"swe", "Swedish"},
	{"syr", "Syriac"},
	{"tam", "Tamil"},
	{"tel", "Telugu"},
	{"tgk", "Tajik"},
	{"tgl", "Tagalog"},
	{"tha", "Thai"},
	{"tir", "Tigrinya"},
	{"tur", "Turkish"},
	{"uig", "Uighur"},
	{"ukr", "Ukrainian"},
	{"urd", "Urdu"},
	{"uzb", "Uzbek"},
	{"uzb_cyrl", "Uzbek (Cyrillic)"},
	{"vie", "Vietnamese"},
	{"yid", "Yiddish"},
}

var languageNames = func() map[Language]string {
	m := make(map[Language]string, len(languageCatalog))
	for _, info := range languageCatalog {
		m[info.Code] = info.Name
	}
	return m
}()

// Languages returns the selectable language catalog.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languageCatalog))
	copy(out, languageCatalog)
	return out
}

// Valid reports whether the code is a member of the catalog.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// DisplayName returns the human-readable name for a catalog language, or the
// code itself for unknown entries.
func (l Language) DisplayName() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Or returns l when it is a catalog member and the default language
// otherwise, so empty or stray selections degrade to the baseline model.
func (l Language) Or(fallback Language) Language {
	if l.Valid() {
		return l
	}
	if fallback.Valid() {
		return fallback
	}
	return DefaultLanguage
}
