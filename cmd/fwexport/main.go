package main

import (
	"errors"
	"fmt"
	"os"

	"fwexport/internal/filmweb"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, filmweb.ErrAuthRejected) {
			fmt.Fprintln(os.Stderr, "The session cookies were rejected. Log in to filmweb.pl in a browser and copy fresh _fwuser_token, _fwuser_sessionId and JWT cookie values.")
		}
		os.Exit(1)
	}
}
