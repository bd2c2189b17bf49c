// Command mdcored is an HTTP front end over mdcore: POST /parse and
// POST /render accept a document body and return the parsed tree or
// rendered HTML; /metrics exposes Prometheus counters for both.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandonbloom/mdcore"
	"github.com/brandonbloom/mdcore/internal/metrics"
)

func main() {
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.POST("/parse", handleParse(m))
	r.POST("/render", handleRender(m))

	addr := os.Getenv("MDCORED_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		panic(err)
	}
}

type docRequest struct {
	GFM  bool `json:"gfm"`
	MDX  bool `json:"mdx"`
}

func optionsFromRequest(req docRequest) mdcore.Options {
	opts := mdcore.DefaultOptions()
	opts.GFM = req.GFM
	opts.MDX = req.MDX
	return opts
}

func handleParse(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var req docRequest
		_ = c.ShouldBindQuery(&req)

		start := time.Now()
		res, err := mdcore.Parse(body, optionsFromRequest(req))
		m.ObserveParse("http", start)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		raw, err := mdcore.SerializeTree(res.Tree)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

func handleRender(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var req docRequest
		_ = c.ShouldBindQuery(&req)

		opts := optionsFromRequest(req)
		start := time.Now()
		res, err := mdcore.RenderHTML(body, opts)
		m.ObserveRender(opts.Sanitize, start)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(res.HTML))
	}
}
