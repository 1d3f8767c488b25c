package student

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fields is the form input for every mutable column. It has no external
// identifier: that is fixed at creation.
type Fields struct {
	Name          string `validate:"required"`
	FatherName    string
	Gender        string
	Course        string
	DOB           string
	FatherPhone   string
	StudentPhone  string
	Address       string
	AdmissionDate string
	ExpellDate    string
	Remarks       string
	GPA           string `validate:"omitempty,gpa"`
}

// FieldsFromMap reads a field-name to value mapping keyed by column name
// (name, father_name, ..., gpa). Unknown keys are ignored.
func FieldsFromMap(m map[string]string) Fields {
	return Fields{
		Name:          m["name"],
		FatherName:    m["father_name"],
		Gender:        m["gender"],
		Course:        m["course"],
		DOB:           m["dob"],
		FatherPhone:   m["father_phone"],
		StudentPhone:  m["student_phone"],
		Address:       m["address"],
		AdmissionDate: m["admission_date"],
		ExpellDate:    m["expell_date"],
		Remarks:       m["remarks"],
		GPA:           m["gpa"],
	}
}

// FieldsOf returns the current mutable values of s, used to pre-fill an edit.
func FieldsOf(s *Student) Fields {
	return Fields{
		Name:          s.Name,
		FatherName:    s.FatherName,
		Gender:        s.Gender,
		Course:        s.Course,
		DOB:           s.DOB,
		FatherPhone:   s.FatherPhone,
		StudentPhone:  s.StudentPhone,
		Address:       s.Address,
		AdmissionDate: s.AdmissionDate,
		ExpellDate:    s.ExpellDate,
		Remarks:       s.Remarks,
		GPA:           FormatGPA(s.GPA),
	}
}

func (f Fields) trimmed() Fields {
	return Fields{
		Name:          strings.TrimSpace(f.Name),
		FatherName:    strings.TrimSpace(f.FatherName),
		Gender:        strings.TrimSpace(f.Gender),
		Course:        strings.TrimSpace(f.Course),
		DOB:           strings.TrimSpace(f.DOB),
		FatherPhone:   strings.TrimSpace(f.FatherPhone),
		StudentPhone:  strings.TrimSpace(f.StudentPhone),
		Address:       strings.TrimSpace(f.Address),
		AdmissionDate: strings.TrimSpace(f.AdmissionDate),
		ExpellDate:    strings.TrimSpace(f.ExpellDate),
		Remarks:       strings.TrimSpace(f.Remarks),
		GPA:           strings.TrimSpace(f.GPA),
	}
}

// apply copies the mutable values onto s. GPA must already be validated.
func (f Fields) apply(s *Student) {
	s.Name = f.Name
	s.FatherName = f.FatherName
	s.Gender = f.Gender
	s.Course = f.Course
	s.DOB = f.DOB
	s.FatherPhone = f.FatherPhone
	s.StudentPhone = f.StudentPhone
	s.Address = f.Address
	s.AdmissionDate = f.AdmissionDate
	s.ExpellDate = f.ExpellDate
	s.Remarks = f.Remarks
	s.GPA, _ = ParseGPA(f.GPA)
}

// ParseGPA turns form text into a GPA. Empty text is absent (nil), not zero.
func ParseGPA(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: gpa %q is not a number", ErrValidation, text)
	}
	return &v, nil
}

// FormatGPA renders a GPA with at least one fractional digit (3.7, 4.0).
// Absent renders as the empty string.
func FormatGPA(gpa *float64) string {
	if gpa == nil {
		return ""
	}
	s := strconv.FormatFloat(*gpa, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var studentIDPattern = regexp.MustCompile(`^` + IDPrefix + `[0-9]{3,}$`)

// newValidator registers the domain tags used by Fields and by Create.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("gpa", func(fl validator.FieldLevel) bool {
		_, err := ParseGPA(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return studentIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError converts validator output into an ErrValidation error
// naming the offending fields.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gpa":
			msgs = append(msgs, fmt.Sprintf("GPA %q is not a number", fe.Value()))
		case "student_id":
			msgs = append(msgs, fmt.Sprintf("student ID %q must look like %s001", fe.Value(), IDPrefix))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
