// Package eval implements the evaluator: splitting one submitted chunk of
// text into logical statements, quote-aware tokenizing each, and
// dispatching to the registered verb, grounded on
// original_source/src/datastore/interp.c's s_eval_str.
package eval

import (
	"context"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// MaxTokens bounds both the number of embedded-newline-separated statements
// in one EvalStr call and the number of whitespace/quote tokens in one
// statement, mirroring the original's TOKEN_MAX guard against unbounded
// input.
const MaxTokens = 8192

// BlockingSessionChecker reports whether the session currently driving
// evaluation is mid-send of a large response and should have new commands
// silently skipped rather than queued, mirroring s_is_blocking_session.
// A nil checker means "never blocking".
type BlockingSessionChecker func(ctx context.Context) bool

// Evaluator ties a verb registry to the interpreter's current state and
// the backpressure gate.
type Evaluator struct {
	Commands  *command.Registry
	State     func() interpstate.State
	IsBlocked BlockingSessionChecker

	// FileContext, if set, reports where the text currently being
	// evaluated came from (see CurrentFileContext). Left nil by New;
	// a host wires it once it knows whether it is driving the
	// evaluator from a config file or an interactive session.
	FileContext func() FileContext
}

// New constructs an Evaluator. state must never be nil.
func New(commands *command.Registry, state func() interpstate.State) *Evaluator {
	return &Evaluator{Commands: commands, State: state}
}

// EvalStr splits text on embedded CR/LF into independent statements (so a
// single submission — e.g. a pasted multi-line block — evaluates each line
// in turn), quote-aware tokenizes each, and dispatches in order, stopping
// at the first statement that fails. A comment line (first token starting
// with '#') is always Ok, even one with an unterminated quote — matching
// the original's deliberate tolerance of "# don't parse me" trailing
// garbage in comments.
func (e *Evaluator) EvalStr(ctx context.Context, text string, out command.Output) error {
	statements := splitStatements(text)
	if len(statements) > MaxTokens {
		return result.Newf(result.TooManyObjects, "too many lines or tokens")
	}

	for _, stmt := range statements {
		if e.IsBlocked != nil && e.IsBlocked(ctx) {
			continue
		}

		tokens, err := tokenizeStatement(stmt)
		if err != nil {
			if result.Of(err) == result.QuoteNotClosed && isCommentPrefix(stmt) {
				continue
			}
			return err
		}
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) > MaxTokens {
			return result.Newf(result.TooManyObjects, "too many lines or tokens")
		}
		if strings.HasPrefix(tokens[0], "#") {
			continue
		}

		if err := e.EvalCmd(ctx, tokens, out); err != nil {
			return err
		}
	}
	return nil
}

// EvalCmd is the narrower entry point: dispatch a single, already
// tokenized command directly, with no statement splitting or
// re-tokenizing. This is what a structured caller (an RPC handler that
// already has argv, not raw text) uses, supplementing the original's
// text-only s_eval_str entry point.
func (e *Evaluator) EvalCmd(ctx context.Context, argv []string, out command.Output) error {
	if len(argv) == 0 {
		return result.New(result.InvalidArgs)
	}

	state := e.State()
	proc, err := e.Commands.Find(argv[0])
	if err != nil {
		if result.Of(err) == result.NotFound && state == interpstate.Preload {
			// Forward references during preload are tolerated: the target
			// verb's owning class may not have registered yet.
			return nil
		}
		return result.Newf(result.NotFound, "%q command not found", argv[0])
	}

	return proc(ctx, state, argv, out)
}

func isCommentPrefix(stmt string) bool {
	trimmed := strings.TrimLeft(stmt, " \t")
	return strings.HasPrefix(trimmed, "#")
}
