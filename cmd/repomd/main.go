package main

import (
	"fmt"

	"github.com/tyemirov/repomd/internal/cli"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	loggerInitializationFailedFormat = "failed to initialize logger: %w"
	applicationExecutionFailed       = "application execution failed"
)

// main is the entry point for the repomd command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(loggerInitializationFailedFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(applicationExecutionFailed + ": " + applicationExecutionError.Error())
	}
}
