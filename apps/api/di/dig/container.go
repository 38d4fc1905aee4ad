package dig_container

import (
	"log"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo-rollover/apps/api/echo"
	"github.com/trezcool/masomo-rollover/core"
	logsvc "github.com/trezcool/masomo-rollover/services/logger"
	inmemdb "github.com/trezcool/masomo-rollover/storage/database/inmem"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newDB opens the in-memory store, seeded with demo data in debug mode.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *inmemdb.DB {
	db := inmemdb.Open()
	if conf.Debug {
		if err := inmemdb.Seed(db, time.Now()); err != nil {
			loggerParam.Logger.Fatal("seeding database", err)
		}
		loggerParam.Logger.Info("database seeded with demo data")
	}
	return db
}

func newValidator() (*validator.Validate, ut.Translator) {
	return core.NewValidator()
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	db *inmemdb.DB,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		Validate:   validate,
		Translator: translator,
	})
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newValidator))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
