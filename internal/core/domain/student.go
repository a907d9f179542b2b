package domain

// Student is reference data supplied by the student-administration side of the
// system. The ledger only ever validates that an optional student reference on
// a journal entry resolves; it never manages student records.
type Student struct {
	StudentID string `json:"studentID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
}
