package main

import (
	"fmt"
	"io"

	"github.com/guttosm/package-form/internal/form"
)

// defaultSuccessMessage is printed when the package API confirms without a message.
const defaultSuccessMessage = "Package created"

// terminalNotifier prints successes to out and errors to errOut.
type terminalNotifier struct {
	out    io.Writer
	errOut io.Writer
}

// Notify implements form.Notifier.
func (n terminalNotifier) Notify(kind form.Kind, message string) {
	if kind == form.KindError {
		fmt.Fprintln(n.errOut, "error:", message)
		return
	}
	if message == "" {
		message = defaultSuccessMessage
	}
	fmt.Fprintln(n.out, message)
}
