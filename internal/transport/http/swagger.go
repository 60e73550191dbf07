package http

import (
	"net/http"
	"os"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

const defaultSwaggerPath = "docs/swagger.yaml"

// RegisterSwagger serves the YAML API description as JSON and the Swagger UI
// under /swagger.
func RegisterSwagger(e *echo.Echo, specPath string) {
	if specPath == "" {
		specPath = defaultSwaggerPath
	}
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		data, err := os.ReadFile(specPath)
		if err != nil {
			requestLog(c).WithError(err).Error("load swagger spec")
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		jsonSpec, err := yaml.YAMLToJSON(data)
		if err != nil {
			requestLog(c).WithError(err).Error("convert swagger spec")
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
