package document

import (
	"fmt"
	"strings"
	"time"

	"student-console/internal/student"
)

const (
	generatedLayout = "2006-01-02 15:04:05"
	issuedLayout    = "2006-01-02"
)

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is what the console prints: an ordered field list, a prose
// body, or both, followed by a footer line.
type Document struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields,omitempty"`
	Body   string  `json:"body,omitempty"`
	Footer string  `json:"footer"`
}

// ReportCard lists every stored field of s. Empty values stay empty.
func ReportCard(s student.Student, now time.Time) Document {
	return Document{
		Title: "Report Card",
		Fields: []Field{
			{"Student ID", s.StudentID},
			{"Name", s.Name},
			{"Father Name", s.FatherName},
			{"Gender", s.Gender},
			{"Course", s.Course},
			{"Date of Birth", s.DOB},
			{"Father Phone", s.FatherPhone},
			{"Student Phone", s.StudentPhone},
			{"Address", s.Address},
			{"Admission Date", s.AdmissionDate},
			{"Date of Expell", s.ExpellDate},
			{"Remarks", s.Remarks},
			{"GPA", student.FormatGPA(s.GPA)},
			{"Enrollment Recorded", s.EnrollmentDate},
		},
		Footer: "Generated: " + now.Format(generatedLayout),
	}
}

func CharacterCertificate(s student.Student, now time.Time) Document {
	body := fmt.Sprintf("This is to certify that %s, son/daughter of %s, "+
		"bearing Student ID %s, has been a student of %s "+
		"in our institution. During the period of study, "+
		"their conduct and character have been found satisfactory.",
		s.Name, s.FatherName, s.StudentID, s.Course)

	return Document{
		Title:  "Character Certificate",
		Body:   body,
		Footer: "Issued on: " + now.Format(issuedLayout),
	}
}

func PassingCertificate(s student.Student, now time.Time) Document {
	gpa := student.FormatGPA(s.GPA)
	if gpa == "" {
		gpa = "N/A"
	}

	body := fmt.Sprintf("This is to certify that %s, son/daughter of %s, "+
		"bearing Student ID %s, has successfully completed the "+
		"%s course with a GPA of %s. "+
		"The student has passed all required examinations.",
		s.Name, s.FatherName, s.StudentID, s.Course, gpa)

	return Document{
		Title:  "Passing Certificate",
		Body:   body,
		Footer: "Issued on: " + now.Format(issuedLayout),
	}
}

// Value returns the value of the first field with label.
func (d Document) Value(label string) (string, bool) {
	for _, f := range d.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// String renders the document as plain text. Field labels are padded to a
// common width; the body is wrapped at 72 columns.
func (d Document) String() string {
	var b strings.Builder

	b.WriteString(d.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(d.Title)))
	b.WriteString("\n\n")

	if len(d.Fields) > 0 {
		width := 0
		for _, f := range d.Fields {
			width = max(width, len(f.Label)+1)
		}
		for _, f := range d.Fields {
			line := fmt.Sprintf("%-*s %s", width, f.Label+":", f.Value)
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if d.Body != "" {
		for _, line := range wrap(d.Body, 72) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(d.Footer)
	b.WriteString("\n")
	return b.String()
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
