package commands

import (
	"fmt"
	"os"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("photo service error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`usage:
  run <config.yml>   start the photo service
  version            print the version
  help               print this message`) //nolint
}
