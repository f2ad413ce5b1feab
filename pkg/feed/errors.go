package feed

import "fmt"

// StructuralError reports records input which can't be rendered at all.
// Index is the offending record position, -1 if the input as a whole is broken.
type StructuralError struct {
	Index  int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Index < 0 {
		return "malformed records: " + e.Reason
	}
	return fmt.Sprintf("malformed record #%d: %s", e.Index, e.Reason)
}
