// Command posctl is the cashier workstation client of the bookstore point of
// sale. It keeps the web session alive while the cashier works, warns before
// idle logout and hands control back to the login page when the session ends.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
