// model/student.go
package model

// Student is read-only reference data for display joins; nothing in the
// borrowing core ever mutates it.
type Student struct {
	ID      string `json:"id"`
	NIM     string `json:"nim"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Faculty string `json:"faculty"`
	Major   string `json:"major"`
}
