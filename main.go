package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/api"
	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/fraud"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
	"github.com/carson-networks/bank-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("bank-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, envConfig.LogLevel)

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	op := operator.NewOperatorDelegator(dbStorage, envConfig.Workers)
	op.Start()
	defer op.Stop()

	svc := service.NewService(dbStorage, op, service.Options{
		Logger:       logger,
		Fraud:        fraud.NewThresholdRule(envConfig.FraudThreshold),
		IsAdminEmail: envConfig.IsAdminEmail,
	})

	if envConfig.SweepToken == "" {
		logger.Warn("SWEEP_TOKEN is empty: /process-scheduled is open to anyone (insecure)")
	}
	if envConfig.RequireOTP {
		logger.Warn("REQUIRE_OTP is set: one-time codes are delivered through the server log (insecure demo delivery)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:     logger,
		Port:       envConfig.Port,
		Storage:    dbStorage,
		Service:    svc,
		Sessions:   session.NewManager(envConfig.SecretKey),
		RequireOTP: envConfig.RequireOTP,
		SweepToken: envConfig.SweepToken,
	}
	httpRest.Serve(ctx)
}
