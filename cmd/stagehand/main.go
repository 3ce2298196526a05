package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

// Exit codes follow sysexits conventions: configuration and harvesting
// problems are data errors, filesystem failures are I/O errors.
const (
	exitSoftware = 1
	exitDataErr  = 65
	exitIOErr    = 74
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		switch errors.CategoryOf(errors.GetErrorCode(err)) {
		case errors.InvalidConfiguration, errors.HarvestingFailed:
			os.Exit(exitDataErr)
		case errors.StagingFailed:
			os.Exit(exitIOErr)
		default:
			os.Exit(exitSoftware)
		}
	}
}
