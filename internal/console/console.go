package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"student-console/internal/student"

	"github.com/spf13/cobra"
)

// Console is the terminal front end over the record store and the
// document generator. Every command is one synchronous store round trip.
type Console struct {
	students    student.Service
	logger      *slog.Logger
	institution string
	in          io.Reader
	out         io.Writer
	now         func() time.Time
}

type Option func(*Console)

func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Console) {
		c.in = in
		c.out = out
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

func WithInstitution(name string) Option {
	return func(c *Console) { c.institution = name }
}

func New(students student.Service, logger *slog.Logger, opts ...Option) *Console {
	c := &Console{
		students:    students,
		logger:      logger,
		institution: "CyberDevPro",
		in:          strings.NewReader(""),
		out:         io.Discard,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RootCommand builds a fresh command tree.
func (c *Console) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "student-console",
		Short:         c.institution + " Student Console",
		Long:          c.institution + " Student Console: record students and print report cards and certificates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.out)

	root.AddCommand(
		c.listCommand(),
		c.showCommand(),
		c.nextIDCommand(),
		c.addCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.reportCardCommand(),
		c.characterCertificateCommand(),
		c.passingCertificateCommand(),
	)
	return root
}

// Execute runs one command. The returned error is meant to be shown to the
// user as a single message; it never leaves the store in a partial state.
func (c *Console) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on the console input. Anything but y/yes
// is a no.
func (c *Console) confirm(question string) bool {
	c.printf("%s [y/N]: ", question)

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
