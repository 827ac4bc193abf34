package text

import (
	"fmt"
	"strings"

	"github.com/go-text/typesetting/language"
)

// Script identifies the Unicode script a run is shaped with.
type Script uint32

// Script constants for the scripts a run can be configured with.
const (
	// ScriptAuto detects the script from the first letter of the run.
	ScriptAuto Script = iota
	// ScriptCommon is used for punctuation, numbers, and symbols shared across scripts.
	ScriptCommon
	// ScriptInherited is used for combining marks that inherit the script of the base character.
	ScriptInherited
	ScriptLatin
	ScriptCyrillic
	ScriptGreek
	ScriptArabic
	ScriptHebrew
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptHangul
	ScriptDevanagari
	ScriptThai
	ScriptGeorgian
	ScriptArmenian
	ScriptBengali
	ScriptTamil
	ScriptTelugu
	ScriptKannada
	ScriptMalayalam
	ScriptGujarati
	ScriptOriya
	ScriptGurmukhi
	ScriptSinhala
	ScriptKhmer
	ScriptLao
	ScriptMyanmar
	ScriptTibetan
	ScriptEthiopic
	// ScriptUnknown is used for scripts without a constant above.
	ScriptUnknown
)

// scriptInfo pairs a Script with its name and go-text script code.
type scriptInfo struct {
	name string
	code language.Script
}

var scriptTable = [...]scriptInfo{
	ScriptAuto:       {"Auto", 0},
	ScriptCommon:     {"Common", language.Common},
	ScriptInherited:  {"Inherited", language.Inherited},
	ScriptLatin:      {"Latin", language.Latin},
	ScriptCyrillic:   {"Cyrillic", language.Cyrillic},
	ScriptGreek:      {"Greek", language.Greek},
	ScriptArabic:     {"Arabic", language.Arabic},
	ScriptHebrew:     {"Hebrew", language.Hebrew},
	ScriptHan:        {"Han", language.Han},
	ScriptHiragana:   {"Hiragana", language.Hiragana},
	ScriptKatakana:   {"Katakana", language.Katakana},
	ScriptHangul:     {"Hangul", language.Hangul},
	ScriptDevanagari: {"Devanagari", language.Devanagari},
	ScriptThai:       {"Thai", language.Thai},
	ScriptGeorgian:   {"Georgian", language.Georgian},
	ScriptArmenian:   {"Armenian", language.Armenian},
	ScriptBengali:    {"Bengali", language.Bengali},
	ScriptTamil:      {"Tamil", language.Tamil},
	ScriptTelugu:     {"Telugu", language.Telugu},
	ScriptKannada:    {"Kannada", language.Kannada},
	ScriptMalayalam:  {"Malayalam", language.Malayalam},
	ScriptGujarati:   {"Gujarati", language.Gujarati},
	ScriptOriya:      {"Oriya", language.Oriya},
	ScriptGurmukhi:   {"Gurmukhi", language.Gurmukhi},
	ScriptSinhala:    {"Sinhala", language.Sinhala},
	ScriptKhmer:      {"Khmer", language.Khmer},
	ScriptLao:        {"Lao", language.Lao},
	ScriptMyanmar:    {"Myanmar", language.Myanmar},
	ScriptTibetan:    {"Tibetan", language.Tibetan},
	ScriptEthiopic:   {"Ethiopic", language.Ethiopic},
	ScriptUnknown:    {unknownStr, language.Unknown},
}

// String returns the name of the script.
func (s Script) String() string {
	if int(s) < len(scriptTable) {
		return scriptTable[s].name
	}
	return unknownStr
}

// Language returns the go-text script code. ScriptAuto returns 0.
func (s Script) Language() language.Script {
	if int(s) < len(scriptTable) {
		return scriptTable[s].code
	}
	return language.Unknown
}

// IsRTL returns true if the script is typically written right-to-left.
func (s Script) IsRTL() bool {
	return s == ScriptArabic || s == ScriptHebrew
}

// ParseScript parses a script name such as "Latin" or "hiragana".
// "auto" and the empty string return ScriptAuto.
func ParseScript(name string) (Script, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ScriptAuto, nil
	}
	for i := range scriptTable {
		if strings.EqualFold(scriptTable[i].name, name) {
			return Script(i), nil //nolint:gosec // i < len(scriptTable)
		}
	}
	return ScriptUnknown, fmt.Errorf("text: unknown script %q", name)
}

// DetectScript returns the script of r using the go-text Unicode tables.
// Scripts without a constant of their own map to ScriptUnknown.
func DetectScript(r rune) Script {
	code := language.LookupScript(r)
	for i := ScriptCommon; i < ScriptUnknown; i++ {
		if scriptTable[i].code == code {
			return i
		}
	}
	return ScriptUnknown
}

// resolveScript returns the script a run is shaped with: the explicit script
// when set, otherwise the script of the first rune that is neither Common nor
// Inherited. All-neutral text falls back to Latin.
func resolveScript(s Script, runes []rune) language.Script {
	if s != ScriptAuto && s != ScriptUnknown {
		return s.Language()
	}
	for _, r := range runes {
		code := language.LookupScript(r)
		if code != language.Common && code != language.Inherited && code != language.Unknown {
			return code
		}
	}
	return language.Latin
}
