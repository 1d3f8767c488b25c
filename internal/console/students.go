package console

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"student-console/internal/student"

	"github.com/spf13/cobra"
)

// fieldFlag binds one form field to a command-line flag.
type fieldFlag struct {
	name  string
	usage string
	field func(*student.Fields) *string
}

var fieldFlags = []fieldFlag{
	{"name", "student name (required)", func(f *student.Fields) *string { return &f.Name }},
	{"father-name", "father's name", func(f *student.Fields) *string { return &f.FatherName }},
	{"gender", "gender", func(f *student.Fields) *string { return &f.Gender }},
	{"course", "course or class", func(f *student.Fields) *string { return &f.Course }},
	{"dob", "date of birth", func(f *student.Fields) *string { return &f.DOB }},
	{"father-phone", "father's phone", func(f *student.Fields) *string { return &f.FatherPhone }},
	{"student-phone", "student's phone", func(f *student.Fields) *string { return &f.StudentPhone }},
	{"address", "address", func(f *student.Fields) *string { return &f.Address }},
	{"admission-date", "admission date", func(f *student.Fields) *string { return &f.AdmissionDate }},
	{"expell-date", "date of expulsion", func(f *student.Fields) *string { return &f.ExpellDate }},
	{"remarks", "remarks", func(f *student.Fields) *string { return &f.Remarks }},
	{"gpa", "GPA, empty for none", func(f *student.Fields) *string { return &f.GPA }},
}

func bindFieldFlags(cmd *cobra.Command, fields *student.Fields) {
	for _, ff := range fieldFlags {
		cmd.Flags().StringVar(ff.field(fields), ff.name, "", ff.usage)
	}
}

// overlayChanged copies onto base only the flags the user actually passed.
func overlayChanged(cmd *cobra.Command, base *student.Fields, input student.Fields) {
	for _, ff := range fieldFlags {
		if cmd.Flags().Changed(ff.name) {
			*ff.field(base) = *ff.field(&input)
		}
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a record id", student.ErrValidation, arg)
	}
	return id, nil
}

func (c *Console) listCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all students, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := c.students.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return c.writeJSON(students)
			}
			return c.printTable(students)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (c *Console) printTable(students []student.Student) error {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tStudent ID\tName\tFather\tGender\tCourse\tDOB\tFather Phone\tStudent Phone\tAddress\tAdmission Date\tExpell Date\tRemarks\tGPA\tEnrollment Date")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.StudentID, s.Name, s.FatherName, s.Gender, s.Course, s.DOB,
			s.FatherPhone, s.StudentPhone, s.Address, s.AdmissionDate, s.ExpellDate,
			s.Remarks, student.FormatGPA(s.GPA), s.EnrollmentDate)
	}
	return tw.Flush()
}

func (c *Console) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show STUDENT-ID",
		Short: "Show one student by student ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.students.FindByStudentID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("%w: %s", student.ErrStudentNotFound, args[0])
			}
			if asJSON {
				return c.writeJSON(s)
			}
			return c.printTable([]student.Student{*s})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (c *Console) nextIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next-id",
		Short: "Print the student ID the next added student will get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.students.NextIdentifier(cmd.Context())
			if err != nil {
				return err
			}
			c.printf("%s\n", id)
			return nil
		},
	}
}

func (c *Console) addCommand() *cobra.Command {
	var fields student.Fields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student; the student ID is assigned automatically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.students.Create(cmd.Context(), "", fields)
			if err != nil {
				return err
			}
			c.printf("Added %s (id %d)\n", created.StudentID, created.ID)
			return nil
		},
	}
	bindFieldFlags(cmd, &fields)
	return cmd
}

func (c *Console) updateCommand() *cobra.Command {
	var input student.Fields

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a student by record id; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := c.students.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			fields := student.FieldsOf(current)
			overlayChanged(cmd, &fields, input)

			if err := c.students.Update(cmd.Context(), id, fields); err != nil {
				return err
			}
			c.printf("Updated %s (id %d)\n", current.StudentID, id)
			return nil
		},
	}
	bindFieldFlags(cmd, &input)
	return cmd
}

func (c *Console) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student by record id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && !c.confirm("Are you sure you want to delete the selected student?") {
				c.printf("Cancelled\n")
				return nil
			}

			if err := c.students.Delete(cmd.Context(), id); err != nil {
				return err
			}
			c.printf("Deleted id %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
