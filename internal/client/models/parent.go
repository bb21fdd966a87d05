package models

// Child is a student linked to a parent account.
type Child struct {
	StudentID    string `json:"studentId"`
	FullName     string `json:"fullName"`
	Grade        string `json:"grade,omitempty"`
	School       string `json:"school,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

func (c Child) Validate() error {
	return required("child", "studentId", c.StudentID)
}
