package student

import "github.com/uptrace/bun"

// EnrollmentLayout is the text format of Student.EnrollmentDate.
const EnrollmentLayout = "2006-01-02 15:04:05"

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID             int64    `bun:"id,pk,autoincrement" json:"id"`
	StudentID      string   `bun:"student_id,unique,notnull" json:"studentId"`
	Name           string   `bun:"name,notnull" json:"name"`
	FatherName     string   `bun:"father_name" json:"fatherName"`
	Gender         string   `bun:"gender" json:"gender"`
	Course         string   `bun:"course" json:"course"`
	DOB            string   `bun:"dob" json:"dob"`
	FatherPhone    string   `bun:"father_phone" json:"fatherPhone"`
	StudentPhone   string   `bun:"student_phone" json:"studentPhone"`
	Address        string   `bun:"address" json:"address"`
	AdmissionDate  string   `bun:"admission_date" json:"admissionDate"`
	ExpellDate     string   `bun:"expell_date" json:"expellDate"`
	Remarks        string   `bun:"remarks" json:"remarks"`
	GPA            *float64 `bun:"gpa,type:real" json:"gpa"` // nil when not supplied, never 0
	EnrollmentDate string   `bun:"enrollment_date" json:"enrollmentDate"`
}
