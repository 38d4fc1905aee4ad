package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/masomo-rollover/core"
	logsvc "github.com/trezcool/masomo-rollover/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// start CLI
	cli := newCommandLine(conf, logger, os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Debug(fmt.Sprintf("%+v", err))
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", core.UserMessage(err))
		}
		os.Exit(1)
	}
}
