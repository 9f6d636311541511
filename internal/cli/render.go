package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vytor/wortflash/internal/models"
)

// stars draws ten stars with round(score/total*10) of them filled.
func stars(score, total int) string {
	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(score) / float64(total) * 10))
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 10-filled)
}

func (a *App) printWord(w models.WordData) {
	c := a.colors
	title := w.Word
	if w.Article != nil {
		title = *w.Article + " " + w.Word
	}
	fmt.Fprintf(a.out, "\n%s%s%s", c.Bold, title, c.Reset)
	if w.PartOfSpeech != "" {
		fmt.Fprintf(a.out, "  %s(%s)%s", c.Cyan, w.PartOfSpeech, c.Reset)
	}
	fmt.Fprintln(a.out)
	if w.PluralForm != nil {
		fmt.Fprintf(a.out, "  plural:  %s\n", *w.PluralForm)
	}
	fmt.Fprintf(a.out, "  english: %s\n", w.EnglishMeaning)
	fmt.Fprintf(a.out, "  türkçe:  %s\n", w.TurkishMeaning)

	if len(w.ExampleSentences) > 0 {
		fmt.Fprintf(a.out, "\n%sExamples%s\n", c.Yellow, c.Reset)
		for i, s := range w.ExampleSentences {
			fmt.Fprintf(a.out, "  %d. %s\n     %s | %s\n", i+1, s.German, s.English, s.Turkish)
		}
	}
	fmt.Fprintf(a.out, "\nType /practice to quiz yourself on %q.\n", w.Word)
}

func (a *App) printQuestion(q models.Question, index, total, score int) {
	c := a.colors
	fmt.Fprintf(a.out, "\n%sQuestion %d of %d%s  ★ %d\n", c.Blue, index+1, total, c.Reset, score)
	fmt.Fprintf(a.out, "%s%s%s\n", c.Cyan, strings.ReplaceAll(string(q.Type()), "_", " "), c.Reset)
	fmt.Fprintf(a.out, "%s%s%s\n", c.Bold, q.Prompt(), c.Reset)

	switch v := q.(type) {
	case *models.ChoiceQuestion:
		for i, opt := range v.Options {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, opt)
		}
	case *models.FillBlankQuestion:
		if v.Hint != "" {
			fmt.Fprintf(a.out, "  hint: %s\n", v.Hint)
		}
	}
}

func correctAnswerText(q models.Question) string {
	switch v := q.(type) {
	case *models.ChoiceQuestion:
		if v.CorrectIndex >= 0 && v.CorrectIndex < len(v.Options) {
			return v.Options[v.CorrectIndex]
		}
	case *models.FillBlankQuestion:
		return v.Answer
	}
	return ""
}

func (a *App) printProfile(p models.UserProfile) {
	c := a.colors
	if p.TotalPractices == 0 {
		fmt.Fprintf(a.out, "\n%sNo practice sessions yet.%s Search for a word and practice to get started!\n", c.Yellow, c.Reset)
		return
	}

	fmt.Fprintf(a.out, "\n%sYour progress%s\n", c.Bold, c.Reset)
	fmt.Fprintf(a.out, "  practices:     %d\n", p.TotalPractices)
	fmt.Fprintf(a.out, "  average score: %s%.1f%s %s\n",
		scoreColor(c, p.AverageScore/10), p.AverageScore, c.Reset, stars(int(math.Round(p.AverageScore*10)), 100))

	recent := p.PracticeHistory
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	fmt.Fprintf(a.out, "\n%sRecent practice%s\n", c.Yellow, c.Reset)
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		fmt.Fprintf(a.out, "  %-16s %s  ★ %d/%d\n", r.Word, formatDate(r.Date), r.Score, r.TotalQuestions)
	}
}

func formatDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format("02.01.2006")
	}
	return s
}

const helpText = `Commands:
  <word> or /search <word>   look up a German word
  /practice                  practice the last word you looked up
  /chat <message>            ask the German tutor (limited per day)
  /close                     close the chat and forget its history
  /profile                   show your practice statistics
  /quota                     show chat messages left today
  /help                      show this help
  /exit                      quit

During practice: type the option number or the missing word,
/skip to skip a broken question, /quit to abandon the session.`
