// Package main audits the ClickHouse journal of a compliance ledger.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/service/auditor"
	"github.com/goodnatureofminers/complianceledger/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

var config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"LEDGER_AUDIT_CLICKHOUSE_DSN" description:"clickhouse dsn" required:"true"`
	Workers       int    `long:"workers" env:"LEDGER_AUDIT_WORKERS" description:"concurrent block verifiers" default:"8"`
}

func main() {
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewRepository("clickhouse"))
	if err != nil {
		logger.Fatal("Open clickhouse", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Close clickhouse", zap.Error(err))
		}
	}()

	a, err := auditor.New(repo, config.Workers, metrics.NewAuditor(), logger.Named("auditor"))
	if err != nil {
		logger.Fatal("Build auditor", zap.Error(err))
	}
	res, err := a.Audit(ctx)
	if err != nil {
		logger.Fatal("Audit journal", zap.Error(err))
	}
	logger.Info("Audit finished", zap.Stringer("result", res))
	if !res.Valid {
		stop()
		os.Exit(1)
	}
}
