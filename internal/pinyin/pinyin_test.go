package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToneMarks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "digit lands at syllable end", in: "nǐ hǎo", want: "ni3 hao3"},
		{name: "digit after ng final", in: "xiǎng", want: "xiang3"},
		{name: "all four a tones", in: "āáǎà", want: "a1a2a3a4"},
		{name: "umlaut with tone", in: "lǜ", want: "lv4"},
		{name: "bare umlaut", in: "nü", want: "nv"},
		{name: "syllabic n", in: "ń ň ǹ", want: "n2 n3 n4"},
		{name: "neutral tone untouched", in: "ma", want: "ma"},
		{name: "digits pass through", in: "ni3hao3", want: "ni3hao3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertToneMarks(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips spaces", in: "nǐ hǎo", want: "ni3hao3"},
		{name: "strips commas", in: "a1, b2", want: "a1b2"},
		{name: "lowercases", in: "Ni3Hao3", want: "ni3hao3"},
		{name: "umlaut folds to v", in: "NÜ3", want: "nv3"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"nǐ hǎo", "lǜ sè", "Zhōng guó", "ni3hao3", "ma", "ǖǘǚǜ"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name      string
		userInput string
		canonical string
		want      bool
	}{
		{name: "digit form against marks", userInput: "ni3hao3", canonical: "nǐ hǎo", want: true},
		{name: "spaces in input ignored", userInput: "ni3 hao3", canonical: "nǐhǎo", want: true},
		{name: "case ignored", userInput: "NI3HAO3", canonical: "nǐ hǎo", want: true},
		{name: "v for umlaut", userInput: "lv4", canonical: "lǜ", want: true},
		{name: "wrong tone", userInput: "ni2hao3", canonical: "nǐ hǎo", want: false},
		{name: "missing tone digit", userInput: "nihao", canonical: "nǐ hǎo", want: false},
		{name: "neutral tone typed bare", userInput: "ma", canonical: "ma", want: true},
		{name: "neutral tone typed with digit", userInput: "ma5", canonical: "ma", want: false},
		{name: "empty input", userInput: "", canonical: "nǐ hǎo", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAnswer(tt.userInput, tt.canonical))
		})
	}
}
