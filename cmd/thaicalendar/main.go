// Command thaicalendar prints Buddhist holy days and fixed Thai holidays.
package main

import (
	"context"
	"fmt"
	"os"

	"thainews/internal/logger"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	logger.InitLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
