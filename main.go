package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zeebo/clingy"
)

func main() {
	ok, err := clingy.Environment{
		Name: "tracestats",
		Args: os.Args[1:],
	}.Run(context.Background(), commands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	if !ok || err != nil {
		os.Exit(1)
	}
}

func commands(cmds clingy.Commands) {
	cmds.New("stats", "summarize where the main thread spent its time", new(cmdStats))
	cmds.New("categories", "print the trace categories to enable when capturing", new(cmdCategories))
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	return nil
}
