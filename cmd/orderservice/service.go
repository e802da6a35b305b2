package main

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"orderservice/pkg/order/application/service"
	"orderservice/pkg/order/infrastructure/mysql"
	"orderservice/pkg/order/infrastructure/transport"
)

const healthServiceName = "orderservice.OrderService"

func runService(ctx context.Context, cnf *config, logger *log.Logger) error {
	db, err := mysql.Open(cnf.database())
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher, closeDispatcher, err := newDispatcher(cnf, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDispatcher(); err != nil {
			logger.WithError(err).Error("failed to close event dispatcher")
		}
	}()

	orders := service.NewOrderService(mysql.NewOrderRepository(db), dispatcher, logger)
	httpServer := &http.Server{
		Addr:    cnf.ServeRESTAddress,
		Handler: transport.Router(orders, transport.NewMetrics(), logger),
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("address", cnf.ServeRESTAddress).Info("starting REST server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "rest server")
		}
		return nil
	})
	g.Go(func() error {
		listener, err := net.Listen("tcp", cnf.ServeGRPCAddress)
		if err != nil {
			return errors.Wrap(err, "grpc listen")
		}
		logger.WithField("address", cnf.ServeGRPCAddress).Info("starting gRPC health server")
		return errors.Wrap(grpcServer.Serve(listener), "grpc server")
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cnf.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
