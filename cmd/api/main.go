package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodnet/internal/config"
	"foodnet/internal/db"
	"foodnet/internal/httpserver"
	"foodnet/internal/invoice"
	"foodnet/internal/payment"
	deliveryrepo "foodnet/internal/repository/delivery"
	jobrepo "foodnet/internal/repository/job"
	orderrepo "foodnet/internal/repository/order"
	productrepo "foodnet/internal/repository/product"
	regionrepo "foodnet/internal/repository/region"
	taskrepo "foodnet/internal/repository/task"
	tokenrepo "foodnet/internal/repository/token"
	userrepo "foodnet/internal/repository/user"
	"foodnet/internal/route"
	cartsvc "foodnet/internal/service/cart"
	checkoutsvc "foodnet/internal/service/checkout"
	jobsvc "foodnet/internal/service/job"
	usersvc "foodnet/internal/service/user"
	"foodnet/internal/tasks"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	regionRepo := regionrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	optionRepo := deliveryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	jobRepo := jobrepo.NewPostgres(dbpool, logger)
	taskRepo := taskrepo.NewPostgres(dbpool)

	routeClient := route.NewClient(cfg.RouteServiceURL, logger)
	dispatcher := tasks.NewOutboxDispatcher(taskRepo)

	userService := usersvc.New(userRepo, tokenRepo)
	cartService := cartsvc.New(orderRepo, productRepo, optionRepo)
	checkoutService := checkoutsvc.New(checkoutsvc.Deps{
		Orders:   orderRepo,
		Products: productRepo,
		Options:  optionRepo,
		Regions:  regionRepo,
		Users:    userRepo,
		Jobs:     jobRepo,
		Routes:   routeClient,
		Tasks:    dispatcher,
		Logger:   logger,
	})
	jobService := jobsvc.New(jobRepo, orderRepo, regionRepo, routeClient, logger)
	gateway := payment.NewSnapGateway(cfg.MidtransServerKey, cfg.MidtransProduction)
	paymentService := payment.New(orderRepo, userRepo, gateway, cfg.MidtransServerKey, logger)
	invoiceRenderer := invoice.NewRenderer(cfg.MerchantName)

	poller := tasks.NewPoller(taskRepo, logger)
	poller.Register(tasks.KindRecalculateFee, jobService.HandleRecalculateFee)
	poller.Register(tasks.KindCreateWallet, paymentService.HandleCreateWallet)

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	go poller.Run(pollerCtx)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Regions:  regionRepo,
		Users:    userService,
		Products: productRepo,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   orderRepo,
		Payments: paymentService,
		Jobs:     jobService,
		Invoices: invoiceRenderer,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
