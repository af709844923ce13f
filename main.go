package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/fintrack-server/api"
	"github.com/carson-networks/fintrack-server/internal/config"
	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/service"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/backend"
)

func main() {
	app := &cli.App{
		Name:  "fintrack",
		Usage: "personal finance ledger server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML config file",
				EnvVars: []string{"FINTRACK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the recurring transaction job",
				Action: serve,
			},
			{
				Name:  "process-recurring",
				Usage: "materialize every due recurring transaction once and exit",
				Flags: []cli.Flag{
					&cli.TimestampFlag{
						Name:   "as-of",
						Usage:  "materialize occurrences up to this date, defaults to today",
						Layout: time.DateOnly,
					},
				},
				Action: processRecurring,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("fintrack exited")
	}
}

// deps is what both commands share: storage, the operator and the services.
type deps struct {
	cfg       *config.Config
	logger    *logrus.Logger
	store     *storage.Storage
	op        *operator.OperatorDelegator
	publisher events.Publisher
	svc       *service.Service
}

func setup(c *cli.Context) (*deps, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger, err := logging.SetupLogging(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debugf("config: %s", spew.Sdump(cfg))

	store, err := backend.Open(c.Context, cfg)
	if err != nil {
		return nil, err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		publisher = amqpPublisher
	}

	op := operator.NewOperatorDelegator(store, logger, cfg.Workers)
	op.Start()

	return &deps{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		op:        op,
		publisher: publisher,
		svc:       service.NewService(store, op, publisher, logger),
	}, nil
}

func (a *deps) close() {
	a.op.Stop()
	if err := a.publisher.Close(); err != nil {
		a.logger.WithError(err).Warn("publisher.Close")
	}
	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).Warn("storage.Close")
	}
}

func serve(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()
	a.logger.WithField("backend", a.cfg.Backend).Info("fintrack starting")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rest := api.Rest{
			Logger:         a.logger,
			Addr:           a.cfg.ListenAddr(),
			AllowedOrigins: a.cfg.AllowedOrigins,
			Service:        a.svc,
			Operator:       a.op,
		}
		return rest.Serve(ctx)
	})
	if a.cfg.RecurringInterval > 0 {
		g.Go(func() error {
			return a.svc.Recurring.Run(ctx, a.cfg.RecurringInterval, time.Now)
		})
	}

	return g.Wait()
}

func processRecurring(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()

	asOf := time.Now()
	if t := c.Timestamp("as-of"); t != nil {
		asOf = *t
	}

	result, err := a.svc.Recurring.ProcessDue(c.Context, asOf, nil)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"asOf":         asOf.Format(time.DateOnly),
		"templates":    result.Templates,
		"materialized": len(result.Materialized),
		"failed":       result.Failed,
	}).Info("process-recurring complete")
	return nil
}
