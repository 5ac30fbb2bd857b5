package transliterate

import "strings"

const (
	sokuon   = 'っ'
	longMark = 'ー'
)

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "i", 'ゑ': "e", 'を': "o", 'ん': "n",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa",
	'ゔ': "vu", 'ゕ': "ka", 'ゖ': "ke",
}

var digraphs = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho", "しぇ": "she",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo", "じぇ": "je",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho", "ちぇ": "che",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"てゅ": "tyu", "でゅ": "dyu",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo", "ふゅ": "fyu",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo",
	"つぁ": "tsa", "つぃ": "tsi", "つぇ": "tse", "つぉ": "tso",
	"いぇ": "ye",
}

// ToHiragana folds katakana (including ヴ and small ヵヶ) to hiragana.
// The long-vowel mark and every other rune are left untouched.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// ToRomaji converts a kana string to Hepburn romaji.
func ToRomaji(kana string) string {
	return romanizeReadings([]string{kana})[0]
}

type streamRune struct {
	segment int
	r       rune
}

// romanizeReadings treats the readings as one continuous stream so that a
// sokuon or long-vowel mark at a segment boundary is resolved against its
// neighbour, then splits the output back per segment.
func romanizeReadings(readings []string) []string {
	var stream []streamRune
	for i, reading := range readings {
		for _, r := range ToHiragana(reading) {
			stream = append(stream, streamRune{segment: i, r: r})
		}
	}

	out := make([]strings.Builder, len(readings))
	var lastVowel byte
	pendingSokuon := -1
	for i := 0; i < len(stream); {
		current := stream[i]
		switch current.r {
		case sokuon:
			if pendingSokuon < 0 {
				pendingSokuon = current.segment
			}
			i++
			continue
		case longMark:
			if lastVowel != 0 {
				out[current.segment].WriteByte(lastVowel)
			}
			i++
			continue
		}

		syllable, width, isKana := nextSyllable(stream, i)
		if pendingSokuon >= 0 {
			if isKana && !isVowel(syllable[0]) && syllable[0] != 'n' {
				doubled := syllable[0]
				if strings.HasPrefix(syllable, "ch") {
					doubled = 't'
				}
				out[pendingSokuon].WriteByte(doubled)
			}
			pendingSokuon = -1
		}
		out[current.segment].WriteString(syllable)

		lastVowel = 0
		if isKana && isVowel(syllable[len(syllable)-1]) {
			lastVowel = syllable[len(syllable)-1]
		}
		i += width
	}

	result := make([]string, len(readings))
	for i := range out {
		result[i] = out[i].String()
	}
	return result
}

func nextSyllable(stream []streamRune, i int) (string, int, bool) {
	if i+1 < len(stream) {
		if syllable, ok := digraphs[string([]rune{stream[i].r, stream[i+1].r})]; ok {
			return syllable, 2, true
		}
	}
	if syllable, ok := monographs[stream[i].r]; ok {
		return syllable, 1, true
	}
	return string(stream[i].r), 1, false
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}
