package deck

const (
	TagBasicHiragana  = "basic hiragana"
	TagVoicedHiragana = "voiced hiragana"
	TagComboHiragana  = "combo hiragana"
	TagBasicKatakana  = "basic katakana"
	TagVoicedKatakana = "voiced katakana"
	TagComboKatakana  = "combo katakana"
)

type kana struct {
	text   string
	romaji string
}

var basicKana = []kana{
	{"あ", "a"}, {"い", "i"}, {"う", "u"}, {"え", "e"}, {"お", "o"},
	{"か", "ka"}, {"き", "ki"}, {"く", "ku"}, {"け", "ke"}, {"こ", "ko"},
	{"さ", "sa"}, {"し", "shi"}, {"す", "su"}, {"せ", "se"}, {"そ", "so"},
	{"た", "ta"}, {"ち", "chi"}, {"つ", "tsu"}, {"て", "te"}, {"と", "to"},
	{"な", "na"}, {"に", "ni"}, {"ぬ", "nu"}, {"ね", "ne"}, {"の", "no"},
	{"は", "ha"}, {"ひ", "hi"}, {"ふ", "fu"}, {"へ", "he"}, {"ほ", "ho"},
	{"ま", "ma"}, {"み", "mi"}, {"む", "mu"}, {"め", "me"}, {"も", "mo"},
	{"や", "ya"}, {"ゆ", "yu"}, {"よ", "yo"},
	{"ら", "ra"}, {"り", "ri"}, {"る", "ru"}, {"れ", "re"}, {"ろ", "ro"},
	{"わ", "wa"}, {"を", "wo"}, {"ん", "n"},
}

var voicedKana = []kana{
	{"が", "ga"}, {"ぎ", "gi"}, {"ぐ", "gu"}, {"げ", "ge"}, {"ご", "go"},
	{"ざ", "za"}, {"じ", "ji"}, {"ず", "zu"}, {"ぜ", "ze"}, {"ぞ", "zo"},
	{"だ", "da"}, {"ぢ", "ji"}, {"づ", "zu"}, {"で", "de"}, {"ど", "do"},
	{"ば", "ba"}, {"び", "bi"}, {"ぶ", "bu"}, {"べ", "be"}, {"ぼ", "bo"},
	{"ぱ", "pa"}, {"ぴ", "pi"}, {"ぷ", "pu"}, {"ぺ", "pe"}, {"ぽ", "po"},
}

var comboKana = []kana{
	{"きゃ", "kya"}, {"きゅ", "kyu"}, {"きょ", "kyo"},
	{"しゃ", "sha"}, {"しゅ", "shu"}, {"しょ", "sho"},
	{"ちゃ", "cha"}, {"ちゅ", "chu"}, {"ちょ", "cho"},
	{"にゃ", "nya"}, {"にゅ", "nyu"}, {"にょ", "nyo"},
	{"ひゃ", "hya"}, {"ひゅ", "hyu"}, {"ひょ", "hyo"},
	{"みゃ", "mya"}, {"みゅ", "myu"}, {"みょ", "myo"},
	{"りゃ", "rya"}, {"りゅ", "ryu"}, {"りょ", "ryo"},
	{"ぎゃ", "gya"}, {"ぎゅ", "gyu"}, {"ぎょ", "gyo"},
	{"じゃ", "ja"}, {"じゅ", "ju"}, {"じょ", "jo"},
	{"びゃ", "bya"}, {"びゅ", "byu"}, {"びょ", "byo"},
	{"ぴゃ", "pya"}, {"ぴゅ", "pyu"}, {"ぴょ", "pyo"},
}

// Default builds a deck holding every hiragana and katakana group, with basic
// hiragana selected and the draw cycle ready.
func Default(opts ...Option) *Deck {
	d := New(opts...)
	groups := []struct {
		kana     []kana
		hiragana string
		katakana string
	}{
		{basicKana, TagBasicHiragana, TagBasicKatakana},
		{voicedKana, TagVoicedHiragana, TagVoicedKatakana},
		{comboKana, TagComboHiragana, TagComboKatakana},
	}
	for _, g := range groups {
		for _, k := range g.kana {
			d.AppendCard(NewCard(k.text, k.romaji, "", g.hiragana))
		}
	}
	for _, g := range groups {
		for _, k := range g.kana {
			d.AppendCard(NewCard(toKatakana(k.text), k.romaji, "", g.katakana))
		}
	}
	d.RebuildActive(TagBasicHiragana)
	return d
}

// toKatakana shifts hiragana code points into the katakana block.
func toKatakana(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'ぁ' && r <= 'ゖ' {
			out[i] = r + ('ァ' - 'ぁ')
		}
	}
	return string(out)
}
