package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	transport "github.com/Fan-Karwanta/motour-server-101/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

var (
	serveMigrate bool
	swaggerPath  string
	bodyLimit    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on PORT. The mobile app endpoints live under /api
and the admin dashboard endpoints under /admin. SIGINT or SIGTERM drains
in-flight requests before exiting.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if serveMigrate {
		if err := rt.migrate(ctx); err != nil {
			return err
		}
	}

	svc := rt.buildServices()
	if svc.objectStorage != nil {
		if err := svc.objectStorage.EnsureBuckets(ctx, rt.cfg.MinIOBucketMedia, rt.cfg.MinIOBucketProfile); err != nil {
			rt.log.WithError(err).Warn("media buckets not ready")
		}
	}
	if rt.cfg.AdminSeedUsername != "" && rt.cfg.AdminSeedPassword != "" {
		if err := seedAdmin(ctx, rt.log, svc.adminAuth, rt.cfg.AdminSeedUsername, rt.cfg.AdminSeedPassword, rt.cfg.AdminSeedRole); err != nil {
			rt.log.WithError(err).Warn("admin seed skipped")
		}
	}

	e := newServer(rt, svc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.WithField("port", rt.cfg.Port).Info("http server listening")
		if err := e.Start(":" + rt.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rt.log.Info("shutting down http server")
		return e.Shutdown(shutdownCtx)
	})
	if interval := rt.cfg.RatingReconcileInterval; interval > 0 {
		g.Go(func() error {
			reconcileLoop(gctx, rt.log, svc, interval)
			return nil
		})
	}
	return g.Wait()
}

func newServer(rt *runtime, svc *services) *echo.Echo {
	e := transport.NewRouter(transport.RouterConfig{
		AllowOrigins: rt.cfg.CORSOrigins(),
		BodyLimit:    bodyLimit,
		Logger:       rt.log,
	})
	transport.RegisterSwagger(e, swaggerPath)

	transport.RegisterAuth(e, svc.auth)
	transport.RegisterDestinations(e, svc.auth, svc.destinations, svc.ratings)
	transport.RegisterSavedDestinations(e, svc.auth, svc.saved)
	transport.RegisterUploads(e, svc.auth, svc.uploads)
	transport.RegisterProfile(e, svc.auth, svc.profiles)
	transport.RegisterVehicles(e, svc.auth, svc.vehicles)

	transport.RegisterAdminAuth(e, svc.adminAuth)
	transport.RegisterAdmin(e, transport.AdminServices{
		Auth:         svc.adminAuth,
		Destinations: svc.destinations,
		Users:        svc.users,
		Ratings:      svc.ratings,
		Metrics:      svc.metrics,
		Uploads:      svc.uploads,
	})
	return e
}

// reconcileLoop repairs averages whose recompute failed at write time.
func reconcileLoop(ctx context.Context, log logrus.FieldLogger, svc *services, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := svc.ratings.ReconcileAll(ctx)
			if err != nil {
				log.WithError(err).Warn("rating reconcile failed")
				continue
			}
			if report.Failed > 0 {
				log.WithFields(logrus.Fields{"checked": report.Checked, "failed": report.Failed}).Warn("rating reconcile incomplete")
			}
		}
	}
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
		cmd.Flags().StringVar(&swaggerPath, "swagger", "docs/swagger.yaml", "path of the OpenAPI document served under /swagger")
		cmd.Flags().StringVar(&bodyLimit, "body-limit", "60M", "maximum request body size")
	}
	rootCmd.AddCommand(serveCmd)
}
