// Package main runs the compliance ledger daemon.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/clock"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/escrow"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/service/miner"
	"github.com/goodnatureofminers/complianceledger/internal/metrics"
	"github.com/goodnatureofminers/complianceledger/internal/transport"
	"github.com/google/uuid"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var config struct {
	Addr           string        `long:"addr" env:"LEDGER_ADDR" description:"gRPC listen address" default:":8000"`
	RestAddr       string        `long:"rest-addr" env:"LEDGER_REST_ADDR" description:"REST explorer and metrics listen address" default:":8001"`
	DataDir        string        `long:"data-dir" env:"LEDGER_DATA_DIR" description:"directory of the local journal" default:"data"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"LEDGER_CLICKHOUSE_DSN" description:"clickhouse dsn, journal mirroring is disabled when empty"`
	Checker        string        `long:"checker" env:"LEDGER_CHECKER" description:"compliance checker" choice:"attestation" choice:"pass" choice:"reject" default:"attestation"`
	PolicyFile     string        `long:"policy-file" env:"LEDGER_POLICY_FILE" description:"attestation policy yaml"`
	DeviceID       string        `long:"device-id" env:"LEDGER_DEVICE_ID" description:"device id reported by the demo attestation source" default:"device-1"`
	Notary         string        `long:"notary" env:"LEDGER_NOTARY" description:"notary receiving block rewards" default:"notary-1"`
	Reward         uint64        `long:"reward" env:"LEDGER_REWARD" description:"reward per mined block, escrow is disabled when zero" default:"1000"`
	MineInterval   time.Duration `long:"mine-interval" env:"LEDGER_MINE_INTERVAL" description:"interval between heartbeat blocks" default:"10s"`
	HealthInterval time.Duration `long:"health-interval" env:"LEDGER_HEALTH_INTERVAL" description:"interval between chain validations" default:"30s"`
	LogJSON        bool          `long:"log-json" env:"LEDGER_LOG_JSON" description:"log in json"`
	LogFile        string        `long:"log-file" env:"LEDGER_LOG_FILE" description:"rotating log file"`
}

func main() {
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		panic("failed to parse arguments: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, syncLogger, err := newLogger(config.LogJSON, config.LogFile)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer syncLogger()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	store, err := openStorage(ctx, logger)
	if err != nil {
		logger.Fatal("Open journal", zap.Error(err))
	}
	defer store.Close(logger)

	esc := escrow.NewHonestyEscrow(metrics.NewEscrow(), logger.Named("escrow"), escrow.WithJournal(store.escrow))
	ledger, err := store.restore(ctx, esc, logger)
	if err != nil {
		logger.Fatal("Restore ledger", zap.Error(err))
	}

	checker, err := newChecker(logger)
	if err != nil {
		logger.Fatal("Build compliance checker", zap.Error(err))
	}
	minerMetrics := metrics.NewMiner()
	opts := []miner.Option{miner.WithJournal(store.sink)}
	if config.Reward > 0 {
		opts = append(opts, miner.WithEscrow(esc, miner.Reward{Notary: config.Notary, Amount: config.Reward}))
	}
	m, err := miner.New(checker, ledger, minerMetrics, logger.Named("miner"), opts...)
	if err != nil {
		logger.Fatal("Build miner", zap.Error(err))
	}

	health := transport.NewHealthReporter(ledger, logger.Named("health"))
	go health.Run(ctx, config.HealthInterval)

	grpcServer := newGRPCServer(logger, health)
	socket, err := net.Listen("tcp", config.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	explorer, err := transport.NewExplorerHandler(ledger, esc, logger.Named("explorer"))
	if err != nil {
		logger.Fatal("Build explorer", zap.Error(err))
	}
	gw := gwruntime.NewServeMux()
	if err := explorer.Register(gw); err != nil {
		logger.Fatal("Register explorer handler", zap.Error(err))
	}
	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(err))
		}
	}()

	minerMetrics.SetChainLength(ledger.Len())
	mineLoop(ctx, m, ledger, minerMetrics, logger)
}

func newGRPCServer(logger *zap.Logger, health *transport.HealthReporter) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
	)
	healthpb.RegisterHealthServer(grpcServer, health.Server())
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)
	return grpcServer
}

// mineLoop mines one heartbeat block per interval until ctx is done.
func mineLoop(ctx context.Context, m *miner.Miner, ledger *chain.Blockchain, minerMetrics *metrics.Miner, logger *zap.Logger) {
	for seq := uint64(1); ; seq++ {
		if err := clock.SleepWithContext(ctx, config.MineInterval); err != nil {
			return
		}
		txs := []model.Transaction{{
			"type": "heartbeat",
			"id":   uuid.NewString(),
			"seq":  seq,
		}}
		_, err := m.Mine(ctx, txs)
		var rejection *miner.RejectionError
		switch {
		case errors.As(err, &rejection):
			logger.Warn("heartbeat rejected", zap.String("reason", string(rejection.Reason)))
		case err != nil:
			logger.Error("heartbeat failed", zap.Error(err))
		}
		minerMetrics.SetChainLength(ledger.Len())
	}
}
