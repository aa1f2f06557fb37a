package export

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Коды времени доставки B2 (お届け時間帯).
const (
	SlotMorning = "0812"
	Slot1214    = "1214"
	Slot1416    = "1416"
	Slot1618    = "1618"
	Slot1820    = "1820"
	Slot1921    = "1921"
)

var validSlots = map[string]struct{}{
	SlotMorning: {},
	Slot1214:    {},
	Slot1416:    {},
	Slot1618:    {},
	Slot1820:    {},
	Slot1921:    {},
}

// TimeSlots возвращает допустимые коды по порядку.
func TimeSlots() []string {
	return []string{SlotMorning, Slot1214, Slot1416, Slot1618, Slot1820, Slot1921}
}

var dashReplacer = strings.NewReplacer(
	"‐", "-", // U+2010
	"‑", "-", // U+2011
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
	"−", "-",
	"ー", "-",
	"ｰ", "-", // width.Narrow превращает "ー" в полуширинный
	"〜", "-",
	"~", "-",
	"〰", "-",
)

var rangeRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{1,2})(?::[0-9]{2})?時?(?:[0-9]{1,2}分)?-([0-9]{1,2})(?::[0-9]{2})?時?(?:[^0-9]|$)`)

// NormalizeTimeSlot приводит произвольный текст желаемого времени к коду B2.
// Всё, что не удалось однозначно распознать, даёт "" (時間帯指定なし).
func NormalizeTimeSlot(in string) string {
	if in == "" {
		return ""
	}
	if _, ok := validSlots[in]; ok {
		return in
	}

	s := normalizePunct(in)
	if s == "" {
		return ""
	}
	if _, ok := validSlots[s]; ok {
		return s
	}

	lower := strings.ToLower(s)
	if strings.Contains(s, "午前") || strings.Contains(lower, "morning") || lower == "am" {
		return SlotMorning
	}

	code := ""
	for _, c := range findRanges(s) {
		if code != "" && c != code {
			// несколько разных интервалов: выбирать не нам
			return ""
		}
		code = c
	}
	if _, ok := validSlots[code]; ok {
		return code
	}
	return ""
}

// findRanges собирает все интервалы "ч-ч" из строки как коды вида "1416".
// Разделитель после интервала не съедается, иначе "14-16,18-20" дал бы один.
func findRanges(s string) []string {
	var out []string
	for pos := 0; pos < len(s); {
		m := rangeRe.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			break
		}
		out = append(out, pad2(s[pos+m[2]:pos+m[3]])+pad2(s[pos+m[4]:pos+m[5]]))
		pos += m[5]
	}
	return out
}

// normalizePunct: полноширинные символы -> ASCII, все тире/тильды -> '-', без пробелов.
func normalizePunct(s string) string {
	s = width.Narrow.String(s)
	s = dashReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func pad2(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}
