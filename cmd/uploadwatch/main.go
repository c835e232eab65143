package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/alexanderjulianmartinez/upload-watch/internal/source/all"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errValidationFailed) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "uploadwatch error: %v\n", err)
		os.Exit(1)
	}
}
