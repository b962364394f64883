package testing

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PrepareEchoContext builds a context for calling a handler directly.
// params are name/value pairs for route params such as job_id.
func PrepareEchoContext(request *http.Request, response http.ResponseWriter, params ...string) echo.Context {
	e := echo.New()
	c := e.NewContext(request, response)

	if len(params)%2 != 0 {
		panic("params must come in name/value pairs")
	}

	names := []string{}
	values := []string{}
	for i := 0; i < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}

	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}
