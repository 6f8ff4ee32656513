package rebuild

import "fmt"

// Warnings accumulates non-fatal issues encountered during one
// reconstruction run. It is append-only and never influences control flow:
// every lossy or unsupported conversion adds one entry and the build
// continues.
type Warnings struct {
	list []string
}

// Addf appends a formatted warning.
func (w *Warnings) Addf(format string, args ...any) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

// List returns the accumulated warnings in order.
func (w *Warnings) List() []string {
	return w.list
}

// Len returns the number of accumulated warnings.
func (w *Warnings) Len() int {
	return len(w.list)
}
