package main

import (
	"flag"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eoplatform/workspace-api/go-pkg/config"
	"github.com/eoplatform/workspace-api/go-pkg/k8s"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
	"github.com/eoplatform/workspace-api/metrics"
	"github.com/eoplatform/workspace-api/workspace"
	"github.com/eoplatform/workspace-api/workspace-api-server/httpapi"
)

var configPathFlag *string

func main() {
	configPathFlag = flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.GetConfig(*configPathFlag)
	if err != nil {
		goutil.Logger.Fatalw("failed to load config",
			"error", err,
		)
	}

	svc := workspace.NewService(k8s.MustLoadDefaultClient(), workspace.ServiceOptions{
		Namespace:       config.CurrentNamespace(cfg),
		Prefix:          cfg.PrefixForName,
		SessionMode:     workspace.SessionMode(cfg.SessionMode),
		RegistrationURL: cfg.RegistrationURL,
	})
	httpapi.Init(svc, cfg.AuthMode)

	router := gin.New()
	router.Use(metrics.PrometheusMiddlewareForGin())

	logger := goutil.Logger.Desugar()
	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	api := router.Group("/")
	if cfg.AuthMode == "gateway" {
		api.Use(httpapi.AuthMiddleware())
	} else {
		goutil.Logger.Warnw("authentication disabled, every caller holds full permissions",
			"auth_mode", cfg.AuthMode,
		)
	}

	api.POST("/workspaces", httpapi.HandleWorkspaceCreate)
	api.GET("/workspaces/:name", httpapi.HandleWorkspaceGet)
	api.DELETE("/workspaces/:name", httpapi.HandleWorkspaceDelete)
	api.PATCH("/workspaces/:name", httpapi.HandleWorkspacePatch)
	api.PUT("/workspaces/:name", httpapi.HandleWorkspaceUpdate)
	api.POST("/workspaces/:name/register", httpapi.HandleWorkspaceRegister)
	api.GET("/workspaces/:name/register/logs", httpapi.HandleWorkspaceRegistrationLog)
	api.POST("/workspaces/:name/session/start", httpapi.HandleSessionStart)
	api.POST("/workspaces/:name/session/stop", httpapi.HandleSessionStop)

	if err := router.Run(cfg.ListenAddr); err != nil {
		goutil.Logger.Fatalw("failed to start workspace-api-server",
			"operation", "router.Run",
			"error", err,
		)
	}
}
