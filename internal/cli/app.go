package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vytor/wortflash/internal/chat"
	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/practice"
	"github.com/vytor/wortflash/internal/services"
)

// Learner is the request layer used by the REPL.
type Learner interface {
	LookupWord(ctx context.Context, word string) (models.WordData, error)
	GeneratePracticeQuestions(ctx context.Context, word models.WordData) ([]models.Question, error)
}

// Deps are the collaborators of an App.
type Deps struct {
	Learner  Learner
	Chat     *chat.Session
	Profiles services.ProfileService
	Quota    services.ChatQuotaService
}

// Option configures an App.
type Option func(*App)

// WithColors turns ANSI colours on or off.
func WithColors(enabled bool) Option {
	return func(a *App) {
		if enabled {
			a.colors = ansi
		} else {
			a.colors = palette{}
		}
	}
}

// App is the interactive learner shell.
type App struct {
	in     *bufio.Reader
	out    io.Writer
	deps   Deps
	colors palette

	current *models.WordData
}

func New(in io.Reader, out io.Writer, deps Deps, opts ...Option) *App {
	a := &App{
		in:   bufio.NewReader(in),
		out:  out,
		deps: deps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run reads commands until /exit or end of input.
func (a *App) Run(ctx context.Context) error {
	c := a.colors
	fmt.Fprintf(a.out, "%sWortFlash%s: German words, practice and a tutor. Type /help for commands.\n", c.Bold, c.Reset)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, "\n> ")
		line, err := a.readLine()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		quit, err := a.dispatch(ctx, line)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit {
			fmt.Fprintln(a.out, "Tschüss!")
			return nil
		}
	}
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(stderrors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) dispatch(ctx context.Context, line string) (bool, error) {
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}

	if !strings.HasPrefix(cmd, "/") {
		a.search(ctx, line)
		return false, nil
	}

	switch strings.ToLower(cmd) {
	case "/search":
		a.search(ctx, arg)
	case "/practice":
		return false, a.practice(ctx)
	case "/chat":
		a.sendChat(ctx, arg)
	case "/close":
		a.deps.Chat.Reset()
		fmt.Fprintln(a.out, "Chat closed.")
	case "/profile":
		a.printProfile(a.deps.Profiles.GetProfile(ctx))
	case "/quota":
		a.printQuota(ctx)
	case "/help":
		fmt.Fprintln(a.out, helpText)
	case "/exit", "/quit":
		return true, nil
	default:
		a.warn("Unknown command %s. Type /help for the list.", cmd)
	}
	return false, nil
}

func (a *App) warn(format string, args ...any) {
	fmt.Fprintf(a.out, "%s%s%s\n", a.colors.Yellow, fmt.Sprintf(format, args...), a.colors.Reset)
}

// requestFailed prints a transient error. The user may retry.
func (a *App) requestFailed(ctx context.Context, what string, err error) {
	logger.FromContext(ctx).WithPrefix("cli").Debug("%s failed: %v", what, err)
	fmt.Fprintf(a.out, "%s%s failed, please try again.%s\n", a.colors.Red, what, a.colors.Reset)
}

func (a *App) search(ctx context.Context, word string) {
	if word == "" {
		a.warn("Usage: /search <word>")
		return
	}
	fmt.Fprintf(a.out, "Looking up %q...\n", word)

	data, err := a.deps.Learner.LookupWord(ctx, word)
	if err != nil {
		a.requestFailed(ctx, "Lookup", err)
		return
	}
	a.current = &data
	a.printWord(data)
}

func (a *App) practice(ctx context.Context) error {
	if a.current == nil {
		a.warn("Look up a word first, then type /practice.")
		return nil
	}
	word := *a.current
	fmt.Fprintf(a.out, "Generating questions for %q...\n", word.Word)

	questions, err := a.deps.Learner.GeneratePracticeQuestions(ctx, word)
	if err != nil {
		a.requestFailed(ctx, "Question generation", err)
		return nil
	}

	session, err := practice.NewSession(word.Word, questions, practice.WithCompletionHandler(func(r practice.Result) {
		a.deps.Profiles.RecordPracticeResult(ctx, models.PracticeResult{
			Word:           r.Word,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
		})
	}))
	if err != nil {
		a.requestFailed(ctx, "Question generation", err)
		return nil
	}

	for {
		q := session.Current()
		a.printQuestion(q, session.Index(), session.Total(), session.Score())
		fmt.Fprint(a.out, "answer> ")

		line, err := a.readLine()
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "/quit":
			fmt.Fprintln(a.out, "Practice abandoned.")
			return nil
		case "/skip":
			if err := session.Skip(); err != nil {
				a.warn("Only broken questions can be skipped.")
				continue
			}
			fmt.Fprintln(a.out, "Skipped.")
		default:
			if !a.answer(session, q, line) {
				continue
			}
		}

		result, err := session.Advance()
		if err != nil {
			a.warn("%v", err)
			continue
		}
		if result != nil {
			a.printResult(*result)
			return nil
		}
	}
}

// answer submits line and prints feedback. It reports false when the same
// question should be asked again.
func (a *App) answer(session *practice.Session, q models.Question, line string) bool {
	c := a.colors

	var ans practice.Answer
	if q.Type().IsChoice() {
		n, err := strconv.Atoi(line)
		if err != nil {
			a.warn("Type the number of an option.")
			return false
		}
		// A question without options falls through so Submit can report it as broken.
		if choice, ok := q.(*models.ChoiceQuestion); ok && len(choice.Options) > 0 && (n < 1 || n > len(choice.Options)) {
			a.warn("Type a number between 1 and %d.", len(choice.Options))
			return false
		}
		ans = practice.ChoiceAnswer(n - 1)
	} else {
		if line == "" {
			a.warn("Type the missing word.")
			return false
		}
		ans = practice.TextAnswer(line)
	}

	correct, err := session.Submit(ans)
	if err != nil {
		var cfgErr *errors.ConfigurationError
		if errors.As(err, &cfgErr) {
			a.warn("This question is broken (%s). Type /skip to move on.", cfgErr.Reason)
		} else {
			a.warn("%v", err)
		}
		return false
	}

	if correct {
		fmt.Fprintf(a.out, "%sRichtig!%s\n", c.Green, c.Reset)
	} else {
		fmt.Fprintf(a.out, "%sFalsch.%s The answer was: %s%s%s\n", c.Red, c.Reset, c.Bold, correctAnswerText(q), c.Reset)
	}
	return true
}

func (a *App) printResult(r practice.Result) {
	c := a.colors
	ratio := 0.0
	if r.TotalQuestions > 0 {
		ratio = float64(r.Score) / float64(r.TotalQuestions)
	}
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 40))
	fmt.Fprintf(a.out, "%sPractice complete!%s You practiced: %s\n", c.Bold, c.Reset, r.Word)
	fmt.Fprintf(a.out, "Score: %s%d/%d%s  %s\n", scoreColor(c, ratio), r.Score, r.TotalQuestions, c.Reset, stars(r.Score, r.TotalQuestions))
	fmt.Fprintln(a.out, strings.Repeat("=", 40))
}

func (a *App) sendChat(ctx context.Context, text string) {
	c := a.colors

	reply, err := a.deps.Chat.Send(ctx, text)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "%stutor:%s %s\n", c.Cyan, c.Reset, reply.Content)
	case stderrors.Is(err, chat.ErrEmptyMessage):
		a.warn("Usage: /chat <message>")
		return
	case stderrors.Is(err, chat.ErrQuotaExhausted):
		a.warn("Daily limit reached. Come back tomorrow for %d more messages.", services.DailyChatLimit)
		return
	case stderrors.Is(err, chat.ErrBusy):
		a.warn("Still waiting for the last reply.")
		return
	case stderrors.Is(err, chat.ErrSessionReset):
		return
	default:
		a.requestFailed(ctx, "Chat", err)
	}
	a.printQuota(ctx)
}

func (a *App) printQuota(ctx context.Context) {
	remaining := a.deps.Quota.RemainingChatMessages(ctx)
	fmt.Fprintf(a.out, "%d/%d chat messages left today.\n", remaining, services.DailyChatLimit)
}
