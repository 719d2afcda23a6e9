// Package replfrontend wires an interactive line-editing front end onto an
// Evaluator: github.com/joeycumines/go-prompt supplies the reader,
// renderer, history and tab completion, the way the original's CLI shell
// sat on top of libedit/readline in front of s_eval_str. The REPL itself
// carries no datastore semantics; it only tokenizes keystrokes into
// submitted lines and forwards them to the evaluator untouched.
package replfrontend

import (
	"context"
	"io"
	"os"
	"strings"

	prompt "github.com/joeycumines/go-prompt"
	istrings "github.com/joeycumines/go-prompt/strings"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/gstate"
	"github.com/lagopus-go/dsinterp/internal/logging"
)

// lineWriter adapts a func(string) into command.Output, one WriteLine call
// per emitted line.
type lineWriter func(string)

func (w lineWriter) WriteLine(s string) { w(s) }

// REPL drives one interactive session against a shared Evaluator.
type REPL struct {
	eval    *eval.Evaluator
	state   *gstate.Tracker
	log     *logging.Logger
	out     io.Writer
	history []string
}

// New constructs a REPL. tracker may be nil, in which case the exit
// checker never reports a shutdown in progress. log may be nil, in which
// case evaluation errors are dropped rather than logged. out defaults to
// os.Stdout when nil.
func New(evaluator *eval.Evaluator, tracker *gstate.Tracker, log *logging.Logger, out io.Writer, history []string) *REPL {
	if out == nil {
		out = os.Stdout
	}
	return &REPL{eval: evaluator, state: tracker, log: log, out: out, history: history}
}

// Run starts the blocking prompt loop; it returns once the user exits
// (Ctrl+D on an empty line, "exit"/"quit", or a shutdown request observed
// via the tracker). It never calls os.Exit — that is RunNoExit's
// contract, used here instead of Run so the caller keeps control of the
// process lifecycle.
func (r *REPL) Run(ctx context.Context) int {
	p := prompt.New(
		r.executor(ctx),
		prompt.WithPrefix("dsinterp> "),
		prompt.WithTitle("dsinterp"),
		prompt.WithHistory(r.history),
		prompt.WithCompleter(r.completer()),
		prompt.WithExitChecker(r.exitChecker),
		prompt.WithPrefixTextColor(prompt.Yellow),
		prompt.WithSelectedSuggestionBGColor(prompt.LightGray),
		prompt.WithSuggestionBGColor(prompt.DarkGray),
	)
	return p.RunNoExit()
}

func (r *REPL) executor(ctx context.Context) prompt.Executor {
	return func(in string) {
		in = strings.TrimSpace(in)
		if in == "" {
			return
		}
		r.history = append(r.history, in)

		var out strings.Builder
		err := r.eval.EvalStr(ctx, in, lineWriter(func(s string) {
			out.WriteString(s)
			out.WriteByte('\n')
		}))
		if out.Len() > 0 {
			_, _ = io.WriteString(r.out, out.String())
		}
		if err != nil && r.log != nil {
			r.log.Warning().Err(err).Log("command failed")
		}
	}
}

// completer offers the registered verb set as completions for the word
// currently being typed; it does not attempt argument-position
// completion, matching the original shell's plain verb-name tab-complete.
func (r *REPL) completer() prompt.Completer {
	return func(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
		endIndex := d.CurrentRuneIndex()
		w := d.GetWordBeforeCursor()
		startIndex := endIndex - istrings.RuneCountInString(w)
		return filterVerbs(r.eval.Commands.Verbs(), w), startIndex, endIndex
	}
}

// filterVerbs turns the evaluator's verb list into suggestions matching
// word, split out from completer so it can be exercised without a real
// prompt.Document.
func filterVerbs(verbs []string, word string) []prompt.Suggest {
	suggestions := make([]prompt.Suggest, len(verbs))
	for i, v := range verbs {
		suggestions[i] = prompt.Suggest{Text: v}
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}

// exitChecker ends the session on a bare "exit"/"quit" line, or once the
// tracker reports a shutdown has been requested underneath the REPL.
func (r *REPL) exitChecker(in string, _ bool) bool {
	switch strings.TrimSpace(in) {
	case "exit", "quit":
		return true
	}
	return r.state != nil && r.state.Current() >= gstate.RequestShutdown
}

var _ command.Output = lineWriter(nil)
