// Package repl implements an interactive shell over an inference engine.
package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mailstepcz/horn"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatTable  = "table"
	FormatJSON   = "json"
)

// DefaultLimit is the number of answers printed per query unless configured otherwise.
const DefaultLimit = 10

var errExit = errors.New("exit")

// REPL represents an instance of the interactive shell.
type REPL struct {
	output      io.Writer
	engine      *horn.Engine
	format      string
	limit       int
	historyPath string
	prompt      string
	banner      string
}

// Option configures a REPL.
type Option func(*REPL)

// WithFormat sets the output format of answers.
func WithFormat(format string) Option {
	return func(r *REPL) {
		r.format = format
	}
}

// WithLimit sets the maximum number of answers printed per query; 0 means no bound.
func WithLimit(n int) Option {
	return func(r *REPL) {
		r.limit = n
	}
}

// WithHistory sets the file the line history is loaded from and saved to.
func WithHistory(path string) Option {
	return func(r *REPL) {
		r.historyPath = path
	}
}

// WithBanner sets the text printed when the loop starts.
func WithBanner(banner string) Option {
	return func(r *REPL) {
		r.banner = banner
	}
}

// New returns a new instance of the REPL.
func New(engine *horn.Engine, output io.Writer, opts ...Option) *REPL {
	r := &REPL{
		output: output,
		engine: engine,
		format: FormatPretty,
		limit:  DefaultLimit,
		prompt: "> ",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Loop will run until the user enters ":exit", Ctrl+C, Ctrl+D, or an unexpected error occurs.
func (r *REPL) Loop() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	r.loadHistory(line)

	if len(r.banner) > 0 {
		fmt.Fprintln(r.output, r.banner)
	}

	line.SetCompleter(r.complete)

	for {
		input, err := line.Prompt(r.prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(r.output, "Exiting")
			break
		}
		if err != nil {
			r.saveHistory(line)
			return err
		}

		err = r.OneShot(input)
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			fmt.Fprintln(r.output, "ERR:", err)
		}
	}

	r.saveHistory(line)
	return nil
}

// OneShot evaluates the line and prints the result. If an error occurs it is
// returned for the caller to display. Definitions executed before the error stay in effect.
func (r *REPL) OneShot(line string) error {
	if cmd := newCommand(line); cmd != nil {
		switch cmd.op {
		case ":list":
			return r.cmdList()
		case ":format":
			return r.cmdFormat(cmd.args)
		case ":limit":
			return r.cmdLimit(cmd.args)
		case ":help":
			return r.cmdHelp()
		case ":exit":
			return errExit
		}
		return fmt.Errorf("unknown command: %s", cmd.op)
	}
	return r.engine.Exec(line, r.PrintAnswers)
}

// Format returns the current output format.
func (r *REPL) Format() string { return r.format }

// Limit returns the current answer limit.
func (r *REPL) Limit() int { return r.limit }

// PrintAnswers prints the answers to a query in the current format, at most the
// current limit of them. It can serve as the query handler of an engine.
//
// "No answer remains." follows only when the search space is exhausted. When the
// limit is reached with frames still pending, "Stopped after N answers." is printed
// even if every pending frame later dead-ends: telling the two apart requires
// continuing the search, which need not terminate.
func (r *REPL) PrintAnswers(_ *horn.Query, s *horn.Solver) error {
	sols, err := s.Take(r.limit)
	if err != nil {
		return err
	}
	answers := make([][]horn.Binding, len(sols))
	for i, sol := range sols {
		answers[i] = horn.Answer(s.Vars(), sol)
	}

	switch r.format {
	case FormatJSON:
		r.printJSON(answers)
	case FormatTable:
		r.printTable(s.Vars(), answers)
	default:
		for _, a := range answers {
			fmt.Fprintln(r.output, horn.FormatAnswer(a))
		}
	}

	if s.Pending() == 0 {
		fmt.Fprintln(r.output, "No answer remains.")
	} else {
		fmt.Fprintf(r.output, "Stopped after %s.\n", countAnswers(len(answers)))
	}
	return nil
}

func countAnswers(n int) string {
	if n == 1 {
		return "1 answer"
	}
	return strconv.Itoa(n) + " answers"
}

func (r *REPL) printJSON(answers [][]horn.Binding) {
	x := make([]map[string]any, len(answers))
	for i, a := range answers {
		x[i] = make(map[string]any, len(a))
		for _, b := range a {
			if b.Value == nil {
				x[i]["$"+b.Name] = nil
			} else {
				x[i]["$"+b.Name] = b.Value.String()
			}
		}
	}
	buf, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		fmt.Fprintln(r.output, err)
		return
	}
	fmt.Fprintln(r.output, string(buf))
}

func (r *REPL) printTable(vars []horn.QueryVar, answers [][]horn.Binding) {
	table := tablewriter.NewWriter(r.output)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	header := []string{"#"}
	for _, v := range vars {
		header = append(header, "$"+v.Name)
	}
	table.SetHeader(header)
	for i, a := range answers {
		row := []string{strconv.Itoa(i + 1)}
		for _, b := range a {
			if b.Value == nil {
				row = append(row, "[missing]")
			} else {
				row = append(row, b.Value.String())
			}
		}
		table.Append(row)
	}
	table.Render()
}

func (r *REPL) cmdList() error {
	kb := r.engine.KnowledgeBase()
	for _, sig := range kb.Signatures() {
		rules := kb.RulesFor(sig.Name)
		fmt.Fprintf(r.output, "%s (%d)\n", sig, len(rules))
		for _, rule := range rules {
			fmt.Fprintf(r.output, "  %s\n", rule)
		}
	}
	return nil
}

func (r *REPL) cmdFormat(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: :format <%s|%s|%s>", FormatPretty, FormatTable, FormatJSON)
	}
	switch args[0] {
	case FormatPretty, FormatTable, FormatJSON:
		r.format = args[0]
		return nil
	}
	return fmt.Errorf("unknown format: %s", args[0])
}

func (r *REPL) cmdLimit(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: :limit <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid limit: %s", args[0])
	}
	r.limit = n
	return nil
}

func (r *REPL) cmdHelp() error {
	printHelpCommands(r.output)
	return nil
}

func (r *REPL) complete(line string) (c []string) {
	for _, cmd := range builtin {
		if strings.HasPrefix(cmd.name, line) {
			c = append(c, cmd.name)
		}
	}
	for _, sig := range r.engine.KnowledgeBase().Signatures() {
		if strings.HasPrefix(sig.Name, line) {
			c = append(c, sig.Name)
		}
	}
	return c
}

func (r *REPL) loadHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		prompt.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		prompt.WriteHistory(f)
		f.Close()
	}
}

type commandDesc struct {
	name string
	args []string
	help string
}

func (c commandDesc) syntax() string {
	if len(c.args) > 0 {
		return fmt.Sprintf("%v %v", c.name, strings.Join(c.args, " "))
	}
	return c.name
}

var extra = [...]commandDesc{
	{"<rule>", []string{}, "add a fact or rule, e.g. num(s($x)) <- num($x)"},
	{"?<goal>", []string{}, "print the answers to a query"},
}

var builtin = [...]commandDesc{
	{":list", []string{}, "list the predicates and their rules"},
	{":format", []string{"<pretty|table|json>"}, "set the output format"},
	{":limit", []string{"<n>"}, "set the number of answers printed per query (0 for all)"},
	{":help", []string{}, "print this message"},
	{":exit", []string{}, "exit back to shell (or ctrl+c, ctrl+d)"},
}

type command struct {
	op   string
	args []string
}

func newCommand(line string) *command {
	p := strings.Fields(strings.TrimSpace(line))
	if len(p) == 0 || !strings.HasPrefix(p[0], ":") {
		return nil
	}
	return &command{
		op:   strings.ToLower(p[0]),
		args: p[1:],
	}
}

func printHelpCommands(output io.Writer) {
	fmt.Fprintln(output, "Commands")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	all := extra[:]
	all = append(all, builtin[:]...)

	maxLength := 0
	for _, c := range all {
		if l := len(c.syntax()); l > maxLength {
			maxLength = l
		}
	}

	f := fmt.Sprintf("%%%dv : %%v\n", maxLength)
	for _, c := range all {
		fmt.Fprintf(output, f, c.syntax(), c.help)
	}

	fmt.Fprintln(output, "")
}
