package models

// ExampleSentence is one German sentence with its translations.
type ExampleSentence struct {
	German  string `json:"german"`
	Turkish string `json:"turkish"`
	English string `json:"english"`
}

// WordData is the dictionary card returned by a word lookup.
// Article and PluralForm are nil for non-nouns.
type WordData struct {
	Word             string            `json:"word"`
	TurkishMeaning   string            `json:"turkishMeaning"`
	EnglishMeaning   string            `json:"englishMeaning"`
	PartOfSpeech     string            `json:"partOfSpeech"`
	Article          *string           `json:"article"`
	PluralForm       *string           `json:"pluralForm"`
	ExampleSentences []ExampleSentence `json:"exampleSentences"`
}

// Context returns the subset of the card used to generate practice questions.
func (w WordData) Context() WordContext {
	return WordContext{
		Word:           w.Word,
		TurkishMeaning: w.TurkishMeaning,
		EnglishMeaning: w.EnglishMeaning,
		Article:        w.Article,
		PluralForm:     w.PluralForm,
		PartOfSpeech:   w.PartOfSpeech,
	}
}

// WordContext is the request body for question generation.
type WordContext struct {
	Word           string  `json:"word" validate:"required,max=100"`
	TurkishMeaning string  `json:"turkishMeaning"`
	EnglishMeaning string  `json:"englishMeaning"`
	Article        *string `json:"article"`
	PluralForm     *string `json:"pluralForm"`
	PartOfSpeech   string  `json:"partOfSpeech"`
}

// Articles is the closed set of grammatical-gender articles.
var Articles = []string{"der", "die", "das"}

// IsArticle reports whether s is one of der/die/das.
func IsArticle(s string) bool {
	for _, a := range Articles {
		if a == s {
			return true
		}
	}
	return false
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
