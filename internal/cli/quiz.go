// Package cli runs the vocabulary quiz in a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

// Mode selects how much of the answer the quiz reveals.
type Mode string

const (
	// ModeNormal shows the reading as a hint.
	ModeNormal Mode = "normal"
	// ModeStudy hides the reading until the word is answered.
	ModeStudy Mode = "study"
)

var _ pflag.Value = (*Mode)(nil)

func (m *Mode) String() string {
	if *m == "" {
		return string(ModeNormal)
	}
	return string(*m)
}

func (m *Mode) Set(value string) error {
	switch Mode(value) {
	case ModeNormal, ModeStudy:
		*m = Mode(value)
		return nil
	}
	return fmt.Errorf("must be one of %s or %s", ModeNormal, ModeStudy)
}

func (m *Mode) Type() string {
	return "mode"
}

const (
	skipCommand = ":skip"
)

var errEnd = errors.New("end of quiz")

// QuizCLI asks random words until the user quits. A word is asked again
// until it is answered correctly or skipped.
type QuizCLI struct {
	backend      Backend
	dictionaryID string
	mode         Mode
	sessionID    string

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	faint        *color.Color
	green        *color.Color
	red          *color.Color
}

func NewQuizCLI(backend Backend, dictionaryID string, mode Mode, stdin io.Reader, stdout io.Writer) *QuizCLI {
	return &QuizCLI{
		backend:      backend,
		dictionaryID: dictionaryID,
		mode:         mode,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		faint:        color.New(color.Faint),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

func (cli *QuizCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sessionID, err := cli.backend.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("backend.StartSession() > %w", err)
	}
	cli.sessionID = sessionID
	cli.printf("Type the word in kana or romaji. %s skips a word, quit ends the quiz.\n\n", skipCommand)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := cli.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		cli.printf("\nReceived interrupt signal, exiting...\n")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return cli.printScore(context.WithoutCancel(ctx))
}

// Session asks one word until it is answered correctly.
func (cli *QuizCLI) Session(ctx context.Context) error {
	question, err := cli.backend.NextQuestion(ctx, cli.dictionaryID, cli.sessionID)
	if err != nil {
		return fmt.Errorf("backend.NextQuestion() > %w", err)
	}
	cli.faint.Fprintf(cli.stdoutWriter, "%s · %d words · %d learning now\n",
		question.DictionaryName, question.TotalWords, question.ActiveSessions)

	for {
		cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.Headword)
		cli.printf("Meaning: %s\n", question.Meaning)
		if cli.mode != ModeStudy {
			cli.faint.Fprintf(cli.stdoutWriter, "Reading: %s\n", question.Reading)
		}
		cli.printf("> ")

		line, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errEnd
			}
			return fmt.Errorf("error reading answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		switch answer {
		case "quit", "exit":
			return errEnd
		case skipCommand:
			cli.printf("%s / %s (%s)\n\n", question.Headword, question.Reading, question.Romaji)
			return nil
		}

		result, err := cli.backend.Check(ctx, question.DictionaryID, question.Headword, answer, cli.sessionID)
		if err != nil {
			return fmt.Errorf("backend.Check() > %w", err)
		}
		if result.Correct {
			cli.green.Fprintf(cli.stdoutWriter, "✅ Correct: %s / %s (%s)\n\n", result.Headword, result.Reading, result.Romaji)
			return nil
		}
		cli.red.Fprintf(cli.stdoutWriter, "❌ Your answer: %s (%s)\n", answer, result.UserRomaji)
		if cli.mode == ModeStudy {
			cli.printf("   Try again, or %s to see the answer.\n\n", skipCommand)
			continue
		}
		cli.green.Fprintf(cli.stdoutWriter, "   Correct answer: %s / %s\n\n", result.Headword, result.Reading)
	}
}

func (cli *QuizCLI) printScore(ctx context.Context) error {
	score, err := cli.backend.Score(ctx, cli.sessionID)
	if err != nil {
		return fmt.Errorf("backend.Score() > %w", err)
	}
	cli.printf("Correct: %d, Wrong: %d\n", score.Correct, score.Wrong)
	return nil
}

func (cli *QuizCLI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(cli.stdoutWriter, format, args...)
}
