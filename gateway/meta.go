package gateway

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/frizzly/api/pkg/discovery"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const discoveryTimeout = 2 * time.Second

// root godoc
// @Summary  Service descriptor
// @Tags     meta
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   / [get]
func (g *Gateway) root(c *gin.Context) {
	resp := gin.H{
		"name":    g.config.Server.Name,
		"version": g.config.Server.Version,
		"status":  "running",
		"endpoints": gin.H{
			"health":    "/api/health",
			"orders":    "/api/orders",
			"products":  "/api/products",
			"users":     "/api/users",
			"analytics": "/api/analytics/orders",
		},
		"documentation": "See /swagger/index.html for full API documentation",
	}
	if g.config.Gateway.Platform != "" {
		resp["platform"] = g.config.Gateway.Platform
	}

	c.JSON(http.StatusOK, resp)
}

// health godoc
// @Summary  Liveness and store state
// @Tags     meta
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /health [get]
func (g *Gateway) health(c *gin.Context) {
	database := "connected"
	if g.store == nil {
		database = "disconnected"
	}

	resp := gin.H{
		"status":    "healthy",
		"database":  database,
		"timestamp": g.now().Format(time.RFC3339),
	}
	if g.discovery != nil {
		resp["status_services"] = g.statusServices(c.Request.Context())
	}
	if g.config.Gateway.Debug {
		resp["debug"] = g.debugInfo()
	}

	c.JSON(http.StatusOK, resp)
}

// statusServices lists the addresses of registered status-check instances.
// Lookup failures are logged and reported as an empty list.
func (g *Gateway) statusServices(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	addrs := []string{}
	instances, err := g.discovery.Discover(ctx, discovery.StatusService)
	if err != nil {
		g.logger.Warn("Failed to discover status services", zap.Error(err))
		return addrs
	}
	for _, instance := range instances {
		addrs = append(addrs, instance.Addr())
	}
	return addrs
}

// debugInfo describes where the process runs from, for diagnosing
// credential file lookups on hosted platforms.
func (g *Gateway) debugInfo() gin.H {
	info := gin.H{
		"current_dir":  "",
		"script_dir":   "",
		"files_in_dir": []string{},
	}

	if wd, err := os.Getwd(); err == nil {
		info["current_dir"] = wd
	}

	exe, err := os.Executable()
	if err != nil {
		g.logger.Warn("Failed to resolve executable", zap.Error(err))
		return info
	}
	dir := filepath.Dir(exe)
	info["script_dir"] = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		g.logger.Warn("Failed to list executable dir", zap.String("dir", dir), zap.Error(err))
		return info
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, e.Name())
	}
	info["files_in_dir"] = files

	return info
}
