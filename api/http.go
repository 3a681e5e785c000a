package api

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
)

func allowsOf(allows []string) map[string]bool {
	allowsMap := map[string]bool{}
	for _, allow := range allows {
		allowsMap[allow] = true
	}
	return allowsMap
}

// IsAllowed check if the referer is in allow list
func IsAllowed(c *gin.Context, allowsMap map[string]bool) bool {
	referer := c.Request.Referer()
	if referer == "" {
		return true
	}

	url, err := url.Parse(referer)
	if err != nil {
		return true
	}

	port := fmt.Sprintf(":%s", url.Port())
	if port == ":" || port == ":80" || port == ":443" {
		port = ""
	}
	host := fmt.Sprintf("%s%s", url.Hostname(), port)
	if host == c.Request.Host {
		return true
	}
	_, has := allowsMap[host]
	return has
}

// crossDomain refuses foreign referers and sets the CORS headers for allowed ones
func crossDomain(allowsMap map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		referer := c.Request.Referer()
		if referer == "" {
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
			}
			return
		}

		if !IsAllowed(c, allowsMap) {
			c.AbortWithStatus(403)
			return
		}

		url, _ := url.Parse(referer)
		referer = fmt.Sprintf("%s://%s", url.Scheme, url.Host)
		c.Writer.Header().Set("Access-Control-Allow-Origin", referer)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
		}
	}
}
