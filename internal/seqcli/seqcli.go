// Package seqcli implements the lazyseq commands,
// which inspect STDIN lines or SQLite rows through a lazykit.Sequence.
package seqcli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
	_ "modernc.org/sqlite"

	"go.llib.dev/lazykit/pkg/lazykit"
	"go.llib.dev/lazykit/pkg/rowseq"
)

// App holds the dependencies shared by the commands.
type App struct {
	Config Config
	Logger *logging.Logger
}

func NewMux(app App) *cli.Mux {
	var m cli.Mux
	m.Handle("empty", EmptyCommand{App: app})
	m.Handle("len", LenCommand{App: app})
	m.Handle("at", AtCommand{App: app})
	m.Handle("slice", SliceCommand{App: app})
	m.Handle("contains", ContainsCommand{App: app})
	m.Handle("sql", SQLCommand{App: app})
	return &m
}

func (app App) done(ctx context.Context, command string, pulled int) {
	app.Logger.Debug(ctx, "command served",
		logging.Field("command", command),
		logging.Field("pulled", pulled))
}

func (app App) fail(w cli.Response, r *cli.Request, command string, code int, err error) {
	app.Logger.Error(r.Context(), "command failed",
		logging.Field("command", command),
		logging.ErrField(err))
	w.ExitCode(code)
	var out io.Writer = w
	if ew, ok := w.(cli.ErrorWriter); ok && ew.Stderr() != nil {
		out = ew.Stderr()
	}
	fmt.Fprintln(out, err.Error())
}

func printAll(w io.Writer, seq *lazykit.Sequence[string]) error {
	for line, err := range seq.Iter() {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type EmptyCommand struct {
	App App
}

func (cmd EmptyCommand) Summary() string { return "tells if the input has no lines" }

func (cmd EmptyCommand) ServeCLI(w cli.Response, r *cli.Request) {
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "empty", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	seq := sess.lines(r.Body)
	defer seq.Close()
	empty, err := seq.IsEmpty()
	if err != nil {
		cmd.App.fail(w, r, "empty", cli.ExitCodeError, err)
		return
	}
	fmt.Fprintln(w, empty)
	cmd.App.done(r.Context(), "empty", sess.pulled)
}

type LenCommand struct {
	App App
}

func (cmd LenCommand) Summary() string { return "counts the input lines" }

func (cmd LenCommand) ServeCLI(w cli.Response, r *cli.Request) {
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "len", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	seq := sess.lines(r.Body)
	defer seq.Close()
	n, err := seq.Len()
	if err != nil {
		cmd.App.fail(w, r, "len", cli.ExitCodeError, err)
		return
	}
	fmt.Fprintln(w, n)
	cmd.App.done(r.Context(), "len", sess.pulled)
}

type AtCommand struct {
	Index int `flag:"index" default:"0" desc:"position of the line, negative counts from the end"`

	App App
}

func (cmd AtCommand) Summary() string { return "prints the line at a position" }

func (cmd AtCommand) ServeCLI(w cli.Response, r *cli.Request) {
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "at", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	seq := sess.lines(r.Body)
	defer seq.Close()
	line, err := seq.Get(cmd.Index)
	if err != nil {
		cmd.App.fail(w, r, "at", cli.ExitCodeError, err)
		return
	}
	fmt.Fprintln(w, line)
	cmd.App.done(r.Context(), "at", sess.pulled)
}

type SliceCommand struct {
	Expr string `flag:"expr" default:":" desc:"start:stop:step slice expression"`

	App App
}

func (cmd SliceCommand) Summary() string { return "prints a slice of the input lines" }

func (cmd SliceCommand) ServeCLI(w cli.Response, r *cli.Request) {
	opts, err := lazykit.ParseSlice(cmd.Expr)
	if err != nil {
		cmd.App.fail(w, r, "slice", cli.ExitCodeBadRequest, err)
		return
	}
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "slice", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	seq := sess.lines(r.Body)
	defer seq.Close()
	view, err := seq.Slice(opts...)
	if err != nil {
		cmd.App.fail(w, r, "slice", cli.ExitCodeBadRequest, err)
		return
	}
	if err := printAll(w, view); err != nil {
		cmd.App.fail(w, r, "slice", cli.ExitCodeError, err)
		return
	}
	cmd.App.done(r.Context(), "slice", sess.pulled)
}

type ContainsCommand struct {
	Value string `flag:"value" required:"true" desc:"the line to look for"`

	App App
}

func (cmd ContainsCommand) Summary() string { return "tells if a line is in the input" }

func (cmd ContainsCommand) ServeCLI(w cli.Response, r *cli.Request) {
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "contains", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	seq := sess.lines(r.Body)
	defer seq.Close()
	ok, err := seq.Contains(cmd.Value)
	if err != nil {
		cmd.App.fail(w, r, "contains", cli.ExitCodeError, err)
		return
	}
	fmt.Fprintln(w, ok)
	cmd.App.done(r.Context(), "contains", sess.pulled)
}

type SQLCommand struct {
	DB    string `flag:"db" required:"true" desc:"path of the SQLite database"`
	Query string `flag:"query" required:"true" desc:"a query selecting a single column"`
	Expr  string `flag:"expr" default:":" desc:"start:stop:step slice expression"`

	App App
}

func (cmd SQLCommand) Summary() string { return "prints a slice of the rows of a SQLite query" }

func (cmd SQLCommand) ServeCLI(w cli.Response, r *cli.Request) {
	opts, err := lazykit.ParseSlice(cmd.Expr)
	if err != nil {
		cmd.App.fail(w, r, "sql", cli.ExitCodeBadRequest, err)
		return
	}
	sess, err := cmd.App.open()
	if err != nil {
		cmd.App.fail(w, r, "sql", cli.ExitCodeError, err)
		return
	}
	defer sess.Close()
	db, err := sql.Open("sqlite", cmd.DB)
	if err != nil {
		cmd.App.fail(w, r, "sql", cli.ExitCodeError, err)
		return
	}
	defer db.Close()

	mapper := rowseq.MapperFunc[string](func(s rowseq.Scanner) (string, error) {
		var v sql.NullString
		if err := s.Scan(&v); err != nil {
			return "", err
		}
		sess.pulled++
		if !v.Valid {
			return "NULL", nil
		}
		return v.String, nil
	})
	seq := rowseq.Query[string](r.Context(), db, mapper, cmd.Query)
	defer seq.Close()

	view, err := seq.Slice(append(opts, sess.opts...)...)
	if err != nil {
		cmd.App.fail(w, r, "sql", cli.ExitCodeBadRequest, err)
		return
	}
	if err := printAll(w, view); err != nil {
		cmd.App.fail(w, r, "sql", cli.ExitCodeError, err)
		return
	}
	cmd.App.done(r.Context(), "sql", sess.pulled)
}
