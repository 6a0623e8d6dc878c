// Command wysiwyg-clean normalizes the contenteditable regions of HTML
// files the way the editor does on blur.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
