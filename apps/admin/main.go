package main

import (
	"log"
	"os"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/storage/fixtures"
)

func main() {
	logger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(core.Getwd())
	if err != nil {
		logger.Fatal(err)
	}

	// start CLI
	cli := commandLine{
		conf:   conf,
		source: fixtures.NewSource(conf.FixturesPath),
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
