package assistant

import (
	"fmt"
	"strings"

	"github.com/vytor/wortflash/internal/models"
)

const tutorSystemPrompt = `You are a friendly German language learning assistant. Your ONLY purpose is to help users learn German.

RULES:
1. ONLY respond to questions about German language learning (vocabulary, grammar, pronunciation, culture related to language)
2. If a user asks about anything NOT related to German learning, politely redirect them
3. Keep responses concise but helpful
4. Use examples when explaining grammar
5. Encourage the learner
6. You can provide German words with their articles (der/die/das)
7. Include Turkish and English translations when teaching vocabulary

Example redirect response for off-topic questions:
"I'm your German learning assistant! I can only help with German language topics. Would you like to learn some new vocabulary or ask about German grammar?"

Always be encouraging and patient with learners.`

func lookupPrompt(word string) string {
	var sentences strings.Builder
	for i := 1; i <= exampleSentenceCount; i++ {
		if i > 1 {
			sentences.WriteString(",\n")
		}
		fmt.Fprintf(&sentences, `    {
      "german": "German sentence %d",
      "turkish": "Turkish translation",
      "english": "English translation"
    }`, i)
	}

	return fmt.Sprintf(`You are a German language expert. Analyze the German word %q and provide the following information in JSON format:

{
  "word": %q,
  "turkishMeaning": "Turkish translation",
  "englishMeaning": "English translation",
  "partOfSpeech": "noun/verb/adjective/adverb/etc",
  "article": "der/die/das (only if noun, otherwise null)",
  "pluralForm": "plural form (only if noun, otherwise null)",
  "exampleSentences": [
%s
  ]
}

IMPORTANT: Return ONLY valid JSON, no additional text or markdown.`, word, word, sentences.String())
}

func practicePrompt(w models.WordContext, count int) string {
	return fmt.Sprintf(`Generate exactly %d practice questions for the German word %q (%s).
Word info:
- Turkish meaning: %s
- English meaning: %s
- Article: %s
- Plural: %s

Create a mix of question types:
1. Multiple choice (4 options, 1 correct)
2. Fill in the blank
3. Meaning selection
4. Sentence completion

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "id": 1,
      "type": "multiple_choice",
      "question": "Question text here",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0
    },
    {
      "id": 2,
      "type": "fill_blank",
      "question": "Complete: Ich ___ gern Bücher.",
      "correctAnswer": "lese",
      "hint": "to read"
    },
    {
      "id": 3,
      "type": "meaning_selection",
      "question": "What does 'Buch' mean?",
      "options": ["Book", "Table", "Chair", "Window"],
      "correctAnswer": 0
    },
    {
      "id": 4,
      "type": "sentence_completion",
      "question": "Choose the correct word: Der ___ ist groß.",
      "options": ["Hund", "Katze", "Maus", "Vogel"],
      "correctAnswer": 0
    }
  ]
}

Make questions progressively harder. Include article questions if it's a noun.
IMPORTANT: Return ONLY valid JSON, no additional text.`,
		count, w.Word, w.PartOfSpeech, w.TurkishMeaning, w.EnglishMeaning, orNA(w.Article), orNA(w.PluralForm))
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
