package main

import (
	"context"
	"fmt"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/delivery/http/controllers"
	"mrchemist-admin-service/internal/app/delivery/http/middlewares"
	"mrchemist-admin-service/internal/app/delivery/http/routers"
	"mrchemist-admin-service/internal/app/drivers/database"
	"mrchemist-admin-service/internal/app/drivers/logger"
	"mrchemist-admin-service/internal/app/drivers/messaging"
	"mrchemist-admin-service/internal/app/drivers/storage"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/core/blogs"
	"mrchemist-admin-service/internal/app/services/core/consultations"
	"mrchemist-admin-service/internal/app/services/core/customers"
	"mrchemist-admin-service/internal/app/services/core/products"
	"mrchemist-admin-service/internal/app/services/core/resources"
	"mrchemist-admin-service/internal/app/services/core/treatments"
	"mrchemist-admin-service/internal/app/services/core/users"
	"mrchemist-admin-service/internal/app/services/shared/assethost"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/gateway"
	"mrchemist-admin-service/internal/app/services/shared/invalidation"
	"mrchemist-admin-service/internal/app/services/shared/listcache"
	"mrchemist-admin-service/internal/app/services/shared/locker"
	"mrchemist-admin-service/internal/app/services/shared/notifications"
	"mrchemist-admin-service/internal/app/services/shared/redis"
	"mrchemist-admin-service/internal/app/services/shared/treatmentlookup"
	"mrchemist-admin-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	accessLog := logger.NewLogrusLogger(internalConfig)

	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.Cache.BroadcastInvalidation {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	err := bootstrapingTheApp(appCtx, bootstrap, middlewares.NewMiddlewares(log, accessLog, internalConfig))
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	cancelApp()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap, middlewareInstance *middlewares.Middlewares) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	notificationService := notifications.NewNotificationService(redisRepository, internalConfig, log)

	// Remote Mr Chemist API
	remoteGateway := gateway.NewRemoteGateway(internalConfig, log)

	// List cache and cross-replica invalidation
	var publisher contracts.InvalidationPublisher
	if bootstrap.RabbitMQ != nil {
		rabbitPublisher, err := invalidation.NewPublisher(bootstrap.RabbitMQ, log)
		if err != nil {
			return err
		}
		publisher = rabbitPublisher
		bootstrap.Closers = append(bootstrap.Closers, rabbitPublisher.Close)
	}
	listCache := listcache.NewListCache(redisRepository, publisher, internalConfig, log)

	if bootstrap.RabbitMQ != nil {
		subscriber, err := invalidation.NewSubscriber(bootstrap.RabbitMQ, listCache, log)
		if err != nil {
			return err
		}
		if err := subscriber.Start(ctx); err != nil {
			return err
		}
		bootstrap.Closers = append(bootstrap.Closers, subscriber.Stop)
	}

	// Asset host
	var assetHost contracts.AssetHost
	switch internalConfig.AssetHost.Driver {
	case config.AssetHostDriverHTTP:
		httpClient := &http.Client{Timeout: time.Duration(internalConfig.AssetHost.RequestTimeoutInSeconds) * time.Second}
		assetHost = assethost.NewHTTPAssetHost(internalConfig.AssetHost.BaseUrl, httpClient, log)
	default:
		minioClient := storage.NewMinio(bootstrap.DriverConfig, internalConfig.AssetHost.BucketName)
		assetHost = assethost.NewMinioAssetHost(minioClient, internalConfig.AssetHost.BucketName, internalConfig.AssetHost.PublicBaseUrl, log)
	}
	assetReconciler := assethost.NewAssetReconciler(assetHost, notificationService, log)
	bootstrap.Waits = append(bootstrap.Waits, assetReconciler.Wait, listCache.Wait)

	// Treatment lookup
	treatmentLookup := treatmentlookup.NewTreatmentLookup(remoteGateway, redisRepository, internalConfig, log)
	treatmentWorker := treatmentlookup.NewWorker(log, internalConfig, lockService, treatmentLookup)
	treatmentWorker.Start(ctx)
	bootstrap.WorkerStop = treatmentWorker.Stop

	// Consultation
	consultationDraftStore := formsession.NewDraftStore[models.Consultation](constvars.DraftKindConsultation, redisRepository, lockService, internalConfig, log)
	consultationUsecase := consultations.NewConsultationUsecase(consultationDraftStore, remoteGateway, treatmentLookup, notificationService, listCache, log)
	consultationController := controllers.NewConsultationController(log, consultationUsecase, internalConfig)

	// Product
	productDraftStore := formsession.NewDraftStore[models.Product](constvars.DraftKindProduct, redisRepository, lockService, internalConfig, log)
	productUsecase := products.NewProductUsecase(productDraftStore, remoteGateway, assetReconciler, treatmentLookup, notificationService, listCache, log)
	productController := controllers.NewProductController(log, productUsecase, internalConfig)

	// Blog
	blogDraftStore := formsession.NewDraftStore[models.Blog](constvars.DraftKindBlog, redisRepository, lockService, internalConfig, log)
	blogUsecase := blogs.NewBlogUsecase(blogDraftStore, remoteGateway, assetReconciler, treatmentLookup, notificationService, listCache, log)
	blogController := controllers.NewBlogController(log, blogUsecase, internalConfig)

	// Treatment
	treatmentUsecase := treatments.NewTreatmentUsecase(remoteGateway, assetReconciler, treatmentLookup, notificationService, listCache, log)
	treatmentController := controllers.NewTreatmentController(log, treatmentUsecase, internalConfig)

	// Customer
	customerDraftStore := formsession.NewDraftStore[models.Customer](constvars.DraftKindCustomer, redisRepository, lockService, internalConfig, log)
	customerUsecase := customers.NewCustomerUsecase(customerDraftStore, remoteGateway, notificationService, listCache, log)
	customerController := controllers.NewCustomerController(log, customerUsecase, internalConfig)

	// User
	userDraftStore := formsession.NewDraftStore[models.User](constvars.DraftKindUser, redisRepository, lockService, internalConfig, log)
	userUsecase := users.NewUserUsecase(userDraftStore, remoteGateway, notificationService, listCache, log)
	userController := controllers.NewUserController(log, userUsecase, internalConfig)

	// Lists, deletions, selector options, notifications
	resourceUsecase := resources.NewResourceUsecase(remoteGateway, listCache, treatmentLookup, notificationService, log)
	resourceController := controllers.NewResourceController(log, resourceUsecase, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewareInstance,
		consultationController,
		productController,
		blogController,
		treatmentController,
		customerController,
		userController,
		resourceController,
	)
	return nil
}
