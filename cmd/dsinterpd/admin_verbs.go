package main

import (
	"context"
	"strings"

	"github.com/aquasecurity/table"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
)

// registerAdminVerbs wires the small set of host-level verbs this command
// exposes on top of the interpreter core: inspecting live state and
// driving the atomic transaction lifecycle. Concrete per-object-class
// configuration syntax (bridge/port/channel/... field grammars) is out of
// scope here, the way spec.md's Non-goals exclude concrete OpenFlow/CLI
// verb syntax from this module entirely.
func registerAdminVerbs(s *system) error {
	verbs := map[string]command.Proc{
		"show":            showVerb(s),
		"state":           stateVerb(s),
		"dry-run":         dryRunVerb(s),
		"dry-run-end":     dryRunEndVerb(s),
		"atomic-begin":    atomicBeginVerb(s),
		"atomic-commit":   atomicCommitVerb(s),
		"atomic-abort":    atomicAbortVerb(s),
		"atomic-rollback": atomicRollbackVerb(s),
	}
	for verb, proc := range verbs {
		if err := s.commands.Add(verb, proc); err != nil {
			return err
		}
	}
	return nil
}

// showVerb renders every registered object, optionally filtered to one
// class when argv[1] is given. Whether it pretty-prints a table or emits
// plain re-parseable lines depends on the evaluator's current
// eval.FileContext: a config file load (ConfigTypeFile) gets the same
// lines classReg.SerializeAll already produces, undecorated; every other
// context, including stream sessions and an unset (Unknown) context, gets
// a table.
func showVerb(s *system) command.Proc {
	return func(_ context.Context, _ interpstate.State, argv []string, out command.Output) error {
		lines, err := s.classReg.SerializeAll()
		if err != nil {
			return err
		}

		var filter string
		if len(argv) > 1 {
			filter = argv[1]
		}

		type row struct{ class, name, detail string }
		var rows []row
		for _, line := range lines {
			fields := strings.SplitN(line, " ", 3)
			if len(fields) == 0 {
				continue
			}
			class := fields[0]
			if filter != "" && class != filter {
				continue
			}
			r := row{class: class}
			if len(fields) > 1 {
				r.name = fields[1]
			}
			if len(fields) > 2 {
				r.detail = fields[2]
			}
			rows = append(rows, r)
		}

		if s.eval.CurrentFileContext().ConfigType == eval.ConfigTypeFile {
			for _, r := range rows {
				out.WriteLine(strings.TrimRight(r.class+" "+r.name+" "+r.detail, " "))
			}
			return nil
		}

		var sb strings.Builder
		t := table.New(&sb)
		t.SetHeaders("Class", "Name", "Detail")
		for _, r := range rows {
			t.AddRow(r.class, r.name, r.detail)
		}
		t.Render()
		for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
			out.WriteLine(line)
		}
		return nil
	}
}

func stateVerb(s *system) command.Proc {
	return func(_ context.Context, state interpstate.State, _ []string, out command.Output) error {
		out.WriteLine(state.String())
		return nil
	}
}

// dryRunVerb clones the whole current configuration into a throwaway
// namespace (objects named "namespace:<name>") so an operator can
// sanity-check object naming/field validation without touching the live
// objects commands would otherwise dispatch against, the way
// interpstate.Dryrun is documented to behave. dryRunEndVerb is the
// matching teardown.
func dryRunVerb(s *system) command.Proc {
	return func(_ context.Context, _ interpstate.State, argv []string, out command.Output) error {
		namespace := "dryrun"
		if len(argv) > 1 {
			namespace = argv[1]
		}
		if err := s.classReg.DuplicateAll("", namespace+":"); err != nil {
			return err
		}
		out.WriteLine("duplicated current configuration under namespace " + namespace)
		return nil
	}
}

// dryRunEndVerb discards a namespace dryRunVerb created, the scoped
// destroy_obj(namespace) walk from spec.md §4.11.
func dryRunEndVerb(s *system) command.Proc {
	return func(_ context.Context, _ interpstate.State, argv []string, out command.Output) error {
		namespace := "dryrun"
		if len(argv) > 1 {
			namespace = argv[1]
		}
		if errs := s.classReg.DestroyAll(namespace); len(errs) > 0 {
			return errs[0]
		}
		out.WriteLine("destroyed dry-run namespace " + namespace)
		return nil
	}
}

func atomicBeginVerb(s *system) command.Proc {
	return func(_ context.Context, _ interpstate.State, argv []string, out command.Output) error {
		configurator := "cli"
		if len(argv) > 1 {
			configurator = argv[1]
		}
		if err := s.interp.AtomicBegin(configurator); err != nil {
			return err
		}
		out.WriteLine("atomic transaction started")
		return nil
	}
}

func atomicCommitVerb(s *system) command.Proc {
	return func(ctx context.Context, _ interpstate.State, _ []string, out command.Output) error {
		if err := s.interp.AtomicCommit(ctx); err != nil {
			return err
		}
		if diag := s.interp.Diagnostic(); diag != "" {
			out.WriteLine("commit self-healed via rollback: " + diag)
		} else {
			out.WriteLine("commit ok")
		}
		return nil
	}
}

func atomicAbortVerb(s *system) command.Proc {
	return func(_ context.Context, _ interpstate.State, _ []string, out command.Output) error {
		if err := s.interp.AtomicAbort(); err != nil {
			return err
		}
		out.WriteLine("transaction aborted")
		return nil
	}
}

func atomicRollbackVerb(s *system) command.Proc {
	return func(ctx context.Context, _ interpstate.State, argv []string, out command.Output) error {
		force := len(argv) > 1 && argv[1] == "force"
		if err := s.interp.AtomicRollback(ctx, force); err != nil {
			return err
		}
		out.WriteLine("transaction rolled back")
		return nil
	}
}
