// internal/cli/console.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/service"
)

const (
	colReset  = "\033[0m"
	colGreen  = "\033[32m"
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colCyan   = "\033[36m"
)

// Console is the terminal front end. It drives the quiz engine step-wise and
// owns at most one session at a time. Reads run on their own goroutine so a
// cancelled context (Ctrl-C) interrupts a blocking prompt and the active
// session still gets its closing summary.
type Console struct {
	app    *service.App
	logger *slog.Logger
	out    io.Writer
	lines  chan string
}

func NewConsole(app *service.App, logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	c := &Console{
		app:    app,
		logger: logger,
		out:    out,
		lines:  make(chan string),
	}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
		close(c.lines)
	}()
	return c
}

// readLine blocks for the next input line. ok is false when input is closed
// or the context is cancelled.
func (c *Console) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, open := <-c.lines:
		if !open {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Run shows the main menu until the learner quits or the context is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.printf("%sHSK pinyin flashcards%s\n", colCyan, colReset)
	c.printf("Answers are typed as pinyin with tone digits (ni3hao3); neutral tones take no digit.\n")
	for {
		if err := c.printStatus(ctx); err != nil {
			return err
		}
		c.printf("\n%sMain menu%s\n", colCyan, colReset)
		c.printf("  1) Learn current patch\n")
		c.printf("  2) Test previous patches\n")
		c.printf("  3) Next patch\n")
		c.printf("  4) Previous patch\n")
		c.printf("  5) Practice revision words\n")
		c.printf("  6) Revision test\n")
		c.printf("  7) Show revision words\n")
		c.printf("  8) Settings\n")
		c.printf("  9) Session history\n")
		c.printf("  0) Quit\n")
		c.printf("> ")

		choice, ok := c.readLine(ctx)
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = c.runSession(ctx, func() (*service.Session, error) {
				return c.app.StartLearnCurrent(ctx)
			})
		case "2":
			err = c.runTest(ctx)
		case "3":
			err = c.move(ctx, c.app.Deck().Advance, "Already at the last patch.")
		case "4":
			err = c.move(ctx, c.app.Deck().Retreat, "Already at the first patch.")
		case "5":
			err = c.runSession(ctx, func() (*service.Session, error) {
				return c.app.StartRevisionPractice(ctx)
			})
		case "6":
			err = c.runSession(ctx, func() (*service.Session, error) {
				return c.app.StartRevisionTest(ctx)
			})
		case "7":
			err = c.showRevision(ctx)
		case "8":
			err = c.settings(ctx)
		case "9":
			err = c.showHistory(ctx)
		case "0", "q":
			c.printf("Bye.\n")
			return nil
		default:
			c.printf("%sUnknown choice %q%s\n", colYellow, choice, colReset)
		}
		if err != nil {
			if isUserError(err) {
				c.printf("%s%v%s\n", colYellow, err, colReset)
				continue
			}
			return err
		}
	}
}

// isUserError reports errors the learner can fix from the menu.
func isUserError(err error) bool {
	return errors.Is(err, model.ErrInvalidInput) ||
		errors.Is(err, model.ErrNoPriorPatches) ||
		errors.Is(err, model.ErrEmptyRevision) ||
		errors.Is(err, model.ErrDataSourceMissing)
}

func (c *Console) printStatus(ctx context.Context) error {
	status, err := c.app.Status(ctx)
	if err != nil {
		return err
	}
	c.printf("\nHSK %d | patch %d/%d | %d words | %d to revise\n",
		status.HSKLevel, status.CurrentPatch, status.TotalPatches,
		status.TotalWords, status.RevisionCount)
	return nil
}

func (c *Console) move(ctx context.Context, step func(context.Context) (bool, error), atEdge string) error {
	moved, err := step(ctx)
	if err != nil {
		return err
	}
	if !moved {
		c.printf("%s%s%s\n", colYellow, atEdge, colReset)
	}
	return nil
}

func (c *Console) runTest(ctx context.Context) error {
	c.printf("How many previous patches to test? [1] ")
	line, ok := c.readLine(ctx)
	if !ok {
		return nil
	}
	patches := 1
	if line != "" {
		n, err := strconv.Atoi(line)
		if err != nil || n <= 0 {
			c.printf("%sNot a positive number: %q%s\n", colYellow, line, colReset)
			return nil
		}
		patches = n
	}
	return c.runSession(ctx, func() (*service.Session, error) {
		return c.app.StartTest(ctx, patches)
	})
}

// runSession is the answer loop shared by every mode. An empty line or "q"
// ends the session early; the summary prints either way.
func (c *Console) runSession(ctx context.Context, start func() (*service.Session, error)) error {
	session, err := start()
	if err != nil {
		return err
	}
	quiz := c.app.Quiz()

	c.printf("\n%sSession started (%s). Type the pinyin with tone digits, empty line or q to stop.%s\n",
		colCyan, session.Mode, colReset)

	for {
		question, err := quiz.NextQuestion(ctx, session)
		if err != nil {
			return err
		}
		if question == nil {
			break // finite session exhausted
		}

		if question.Total > 0 {
			c.printf("\n[%d/%d] ", question.Number, question.Total)
		} else {
			c.printf("\n[%d] ", question.Number)
		}
		c.printf("%s\n> ", question.Text)

		answer, ok := c.readLine(ctx)
		if !ok || answer == "" || answer == "q" {
			break
		}

		result, err := quiz.SubmitAnswer(ctx, session, answer)
		if err != nil {
			return err
		}
		if result.Correct {
			c.printf("%sCorrect!%s ", colGreen, colReset)
		} else {
			c.printf("%sWrong.%s ", colRed, colReset)
		}
		c.printf("%s  %s  %s\n", result.Word.Chinese, result.Pinyin, result.Word.Meaning)
		if result.Word.HanViet != "" {
			c.printf("  Han Viet: %s\n", result.Word.HanViet)
		}
		if result.Word.NghiaTiengViet != "" {
			c.printf("  Nghia Tieng Viet: %s\n", result.Word.NghiaTiengViet)
		}
		if result.Word.CachDung != "" {
			c.printf("  Usage: %s\n", result.Word.CachDung)
		}
	}

	summary, err := quiz.Finish(ctx, session)
	if err != nil {
		return err
	}
	c.printSummary(summary)
	return nil
}

func (c *Console) printSummary(s *service.Summary) {
	if s.Asked == 0 {
		c.printf("\nNo questions answered.\n")
		return
	}
	c.printf("\n%sSession report%s\n", colCyan, colReset)
	c.printf("  Answered: %d\n", s.Asked)
	c.printf("  Correct:  %d\n", s.Correct)
	c.printf("  Score:    %.1f%%\n", s.Score)
	if s.Mode == service.ModeRevisionTest {
		c.printf("  Removed from revision: %d (remaining %d)\n", s.Removed, s.Remaining)
	}
}

func (c *Console) showRevision(ctx context.Context) error {
	words, err := c.app.RevisionWords(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		c.printf("Revision set is empty.\n")
		return nil
	}
	c.printf("\n%sRevision words (%d)%s\n", colCyan, len(words), colReset)
	for _, w := range words {
		c.printf("  %s  %s  %s\n", w.Chinese, w.Pinyin, w.Meaning)
	}
	return nil
}

func (c *Console) settings(ctx context.Context) error {
	cfg := c.app.Config()
	c.printf("\nHSK level [%d]: ", cfg.HSKLevel)
	line, ok := c.readLine(ctx)
	if !ok {
		return nil
	}
	if line != "" {
		level, err := strconv.Atoi(line)
		if err != nil {
			c.printf("%sNot a number: %q%s\n", colYellow, line, colReset)
			return nil
		}
		if err := c.app.SetHSKLevel(ctx, level); err != nil {
			return err
		}
	}

	c.printf("Words per patch [%d]: ", cfg.PatchSize)
	line, ok = c.readLine(ctx)
	if !ok {
		return nil
	}
	if line != "" {
		size, err := strconv.Atoi(line)
		if err != nil {
			c.printf("%sNot a number: %q%s\n", colYellow, line, colReset)
			return nil
		}
		if err := c.app.SetPatchSize(ctx, size); err != nil {
			return err
		}
	}

	c.printf("Reset progress (reshuffle, back to patch 1)? [y/N] ")
	line, ok = c.readLine(ctx)
	if ok && strings.EqualFold(line, "y") {
		if err := c.app.ResetProgress(ctx); err != nil {
			return err
		}
		c.printf("Progress reset.\n")
	}
	return nil
}

func (c *Console) showHistory(ctx context.Context) error {
	records, stats, err := c.app.History(ctx, 10)
	if err != nil {
		return err
	}
	if stats.Sessions == 0 {
		c.printf("No sessions recorded yet.\n")
		return nil
	}
	c.printf("\n%sHistory: %d sessions, %d/%d correct (%.1f%%)%s\n",
		colCyan, stats.Sessions, stats.Correct, stats.Asked, stats.Accuracy, colReset)
	for _, r := range records {
		c.printf("  %s  %-17s HSK%d  %d/%d  %.1f%%\n",
			r.FinishedAt.Format("2006-01-02 15:04"), r.Mode, r.HSKLevel,
			r.Correct, r.Asked, r.Score)
	}
	return nil
}
