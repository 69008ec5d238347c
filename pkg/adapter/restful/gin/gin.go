// Package gin wraps the gin-gonic engine, so the configuration layer
// can instantiate it without importing gin-gonic directly.
package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/serdser"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New instantiates a gin-gonic engine in the release mode, using the
// given middlewares. Validation errors of request bodies and queries
// report the JSON (or form) field names.
func New(middlewares ...HandlerFunc) *Engine {
	gin.SetMode(gin.ReleaseMode)
	serdser.UseTagFieldNames()
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
