// Package api serves the node method table over HTTP for hosts that call
// nodes with JSON requests instead of the plugin protocol.
//
//	GET  /describe
//	POST /credential-test
//	POST /load-options/:method
//	POST /resource-mapping
//	POST /execute
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/node"
)

// Routes binds the node methods to the router under path. Requests with a
// referer outside allows are refused when allows is not empty.
func Routes(router *gin.Engine, path string, n *node.Node, allows ...string) {
	group := router.Group(path)
	handlers := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if len(allows) == 0 {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{crossDomain(allowsOf(allows)), handler}
	}

	if len(allows) > 0 {
		group.OPTIONS("/*path", crossDomain(allowsOf(allows)))
	}

	group.GET("/describe", handlers(func(c *gin.Context) {
		c.JSON(200, node.Describe())
	})...)

	group.POST("/credential-test", handlers(call(n, func(c *gin.Context) string { return node.MethodCredentialTest }))...)
	group.POST("/resource-mapping", handlers(call(n, func(c *gin.Context) string { return node.MethodResourceMapping }))...)
	group.POST("/execute", handlers(call(n, func(c *gin.Context) string { return node.MethodExecute }))...)
	group.POST("/load-options/:method", handlers(func(c *gin.Context) {
		method := c.Param("method")
		if _, has := node.LoadOptions(method); !has {
			c.JSON(404, gin.H{"code": 404, "message": fmt.Sprintf("load options %s does not support", method)})
			return
		}
		call(n, func(c *gin.Context) string { return "loadOptions." + method })(c)
	})...)
}

// New a gin engine serving the node at the root path
func New(n *node.Node, allows ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	Routes(router, "/", n, allows...)
	return router
}

func call(n *node.Node, methodOf func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := methodOf(c)
		id := uuid.NewString()

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}

		payload, err := host.PayloadOf(body)
		if err != nil {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}

		log.With(log.F{"request": id, "method": method}).Debug("[api] %s", c.FullPath())
		res, err := n.Call(c.Request.Context(), method, payload)
		if err != nil {
			log.With(log.F{"request": id, "method": method}).Error("[api] %s", err.Error())
			c.JSON(500, gin.H{"code": 500, "message": err.Error()})
			return
		}
		c.JSON(200, res)
	}
}
