package console

import (
	"fmt"
	"os"
	"time"

	"student-console/internal/document"
	"student-console/internal/student"

	"github.com/spf13/cobra"
)

type renderFunc func(student.Student, time.Time) document.Document

func (c *Console) reportCardCommand() *cobra.Command {
	return c.documentCommand("report-card", "Print the report card of a student", document.ReportCard)
}

func (c *Console) characterCertificateCommand() *cobra.Command {
	return c.documentCommand("character-certificate", "Print a character certificate", document.CharacterCertificate)
}

func (c *Console) passingCertificateCommand() *cobra.Command {
	return c.documentCommand("passing-certificate", "Print a passing certificate", document.PassingCertificate)
}

// documentCommand looks the student up by student ID and renders one
// document, to the console or to --out for printing.
func (c *Console) documentCommand(use, short string, render renderFunc) *cobra.Command {
	var outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use + " STUDENT-ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.students.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			doc := render(*s, c.now())
			c.logger.DebugContext(cmd.Context(), "document rendered", "document", doc.Title, "student_id", s.StudentID)

			if asJSON {
				return c.writeJSON(doc)
			}
			if outPath == "" {
				c.printf("%s", doc.String())
				return nil
			}

			if err := os.WriteFile(outPath, []byte(doc.String()), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			c.printf("%s for %s written to %s\n", doc.Title, s.StudentID, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the document to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the document as JSON")
	return cmd
}
