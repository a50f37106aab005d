package main

import (
	"os"

	"github.com/refka/mediatray/cmd"
	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/logging"
)

func main() {
	defer logging.ShutdownGlobal()
	if err := cmd.Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
