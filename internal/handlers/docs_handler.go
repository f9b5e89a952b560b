package handlers

import (
	"net/http"

	"github.com/getmentor/mentor-match-api/docs"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsUIPath   = "/swagger-ui"
	openAPIPath  = "/openapi.json"
	docsUIIndex  = docsUIPath + "/index.html"
	docsUIAssets = docsUIPath + "/*any"
)

// RegisterDocsRoutes serves the API document and Swagger UI at the server
// root and redirects / to the UI
func RegisterDocsRoutes(r gin.IRoutes, handlers ...gin.HandlerFunc) {
	chain := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, handlers...), h)
	}
	ui := gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath)))

	r.GET("/", chain(redirectTo(http.StatusTemporaryRedirect, docsUIPath))...)
	r.GET(openAPIPath, chain(OpenAPIDocument)...)
	// the UI resolves its assets relative to the first path it serves
	r.GET(docsUIPath, chain(redirectTo(http.StatusMovedPermanently, docsUIIndex))...)
	r.GET(docsUIAssets, chain(ui)...)
}

// OpenAPIDocument handles GET /openapi.json
func OpenAPIDocument(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}

func redirectTo(status int, location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(status, location)
	}
}
