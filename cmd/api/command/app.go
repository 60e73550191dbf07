package command

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Fan-Karwanta/motour-server-101/internal/config"
	"github.com/Fan-Karwanta/motour-server-101/internal/logging"
	"github.com/Fan-Karwanta/motour-server-101/internal/media"
	miniostore "github.com/Fan-Karwanta/motour-server-101/internal/repository/minio"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/postgres"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

// runtime is the process state every sub-command starts from: configuration,
// the configured logger and an open database.
type runtime struct {
	cfg     config.Config
	log     *logrus.Logger
	db      *sqlx.DB
	cleanup []func()
}

func newRuntime() (*runtime, error) {
	cfg := config.Load()
	log, closeLog := logging.Setup(logging.Config{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		File:         cfg.LogFile,
		LogstashAddr: cfg.LogstashTCPAddr,
	})
	rt := &runtime{cfg: cfg, log: log, cleanup: []func(){closeLog}}

	db, err := postgres.New(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxConns,
		MaxIdleConns:    cfg.DBMaxConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	rt.db = db
	rt.cleanup = append(rt.cleanup, func() { _ = db.Close() })
	return rt, nil
}

// close releases resources in reverse order of acquisition.
func (rt *runtime) close() {
	for i := len(rt.cleanup) - 1; i >= 0; i-- {
		rt.cleanup[i]()
	}
}

func (rt *runtime) migrate(ctx context.Context) error {
	applied, err := postgres.Migrate(ctx, rt.db)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if len(applied) == 0 {
		rt.log.Info("database schema up to date")
		return nil
	}
	for _, name := range applied {
		rt.log.WithField("migration", name).Info("migration applied")
	}
	return nil
}

type services struct {
	auth          *service.AuthService
	adminAuth     *service.AdminAuthService
	destinations  *service.DestinationService
	ratings       *service.RatingService
	saved         *service.SavedDestinationService
	uploads       *service.UploadService
	vehicles      *service.VehicleService
	profiles      *service.ProfileService
	users         *service.UserAdminService
	metrics       *service.MetricsService
	objectStorage *miniostore.Storage
}

// buildServices wires repositories into services. A media host that cannot
// be reached at startup leaves uploads disabled instead of failing the boot.
func (rt *runtime) buildServices() *services {
	cfg := rt.cfg

	userRepo := postgres.NewUserRepo(rt.db)
	adminRepo := postgres.NewAdminUserRepo(rt.db)
	destRepo := postgres.NewDestinationRepo(rt.db)
	ratingRepo := postgres.NewRatingRepo(rt.db)
	savedRepo := postgres.NewSavedDestinationRepo(rt.db)
	vehicleRepo := postgres.NewVehicleRepo(rt.db)
	metricsRepo := postgres.NewMetricsRepo(rt.db)

	var objects ports.ObjectStorage
	storage, err := miniostore.NewStorage(miniostore.Config{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		UseSSL:    cfg.MinIOUseSSL,
		PublicURL: cfg.MediaPublicURL,
	})
	if err != nil {
		rt.log.WithError(err).Warn("media storage disabled")
	} else {
		objects = storage
	}

	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, cfg.ImageMaxDimension)
	uploadCfg := service.UploadServiceConfig{
		Bucket:            cfg.MinIOBucketMedia,
		MaxImageBytes:     cfg.UploadMaxBytes,
		MaxVideoBytes:     cfg.VideoMaxBytes,
		ImageMaxDimension: cfg.ImageMaxDimension,
		ImageProcessor:    processor,
		Thumbnailer:       processor,
		Logger:            rt.log,
	}
	uploads := service.NewUploadService(objects, uploadCfg)
	profileCfg := uploadCfg
	profileCfg.Bucket = cfg.MinIOBucketProfile
	profileUploads := service.NewUploadService(objects, profileCfg)

	userJWT := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL, util.TokenKindUser)
	adminJWT := util.NewJWTManager(cfg.AdminJWTSecret, cfg.AdminSessionTTL, util.TokenKindAdmin)

	ratings := service.NewRatingService(ratingRepo, destRepo, rt.log)
	saved := service.NewSavedDestinationService(savedRepo, destRepo)

	return &services{
		auth:          service.NewAuthService(userRepo, userJWT, cfg.GoogleAudience),
		adminAuth:     service.NewAdminAuthService(adminRepo, adminJWT),
		destinations:  service.NewDestinationService(destRepo, ratingRepo),
		ratings:       ratings,
		saved:         saved,
		uploads:       uploads,
		vehicles:      service.NewVehicleService(vehicleRepo, profileUploads),
		profiles:      service.NewProfileService(userRepo, profileUploads),
		users:         service.NewUserAdminService(userRepo, ratingRepo, saved, ratings, rt.log),
		metrics:       service.NewMetricsService(metricsRepo, service.MetricsServiceConfig{Concurrency: 4, Logger: rt.log}),
		objectStorage: storage,
	}
}
