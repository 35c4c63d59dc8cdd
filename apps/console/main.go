package main

import (
	"log"
	"os"

	"github.com/shulehq/shulectl/apps/console/cmd"
	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
	"github.com/shulehq/shulectl/services/backend"
	logsvc "github.com/shulehq/shulectl/services/logger"
	"github.com/shulehq/shulectl/storage/state"
	inmemstate "github.com/shulehq/shulectl/storage/state/inmem"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "CONSOLE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// TEST runs must not touch the operator's real state dir
	var store session.Store
	if conf.TestMode {
		store = inmemstate.NewStore()
	} else {
		fileStore, err := state.NewFileStore(conf)
		if err != nil {
			logger.Fatal("setting up session store", err)
		}
		store = fileStore
	}

	deps := &cmd.Deps{
		Conf:    conf,
		Logger:  logger,
		Store:   store,
		Backend: backend.NewClient(conf, store, logger),
	}
	if err := cmd.New(deps).Execute(); err != nil {
		os.Exit(1)
	}
}
