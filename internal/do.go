package internal

import (
	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/config"
	"github.com/willie68/go_globetiler/internal/generator"
	"github.com/willie68/go_globetiler/internal/journal"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/tilestore"
	"github.com/willie68/go_globetiler/internal/utils/measurement"
)

// Init creates all services from the loaded config
func Init(inj do.Injector) {
	config.Init(inj)
	logging.Init(inj)
	measurement.Init(inj)
	tilestore.Init(inj)
	journal.Init(inj)
	generator.Init(inj)
}

// Stop closes the journal and the log outputs
func Stop(inj do.Injector) {
	log := logging.New("internal")
	if j, err := do.Invoke[*journal.Journal](inj); err == nil {
		if err := j.Close(); err != nil {
			log.Error("error on close journal", "error", err)
		}
	}
	if err := logging.Close(); err != nil {
		log.Error("error on close logging", "error", err)
	}
}
