// Package docs registers the OpenAPI document with swag so echo-swagger can serve it.
package docs

import (
	"encoding/json"
	"sync"

	"marketplace/internal/api/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds the registered document. The template is the embedded OpenAPI
// contract rendered as JSON.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketplace Orders",
	Description:      "Unified order status and split-order cancellation.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register renders the OpenAPI contract and registers it under SwaggerInfo.InfoInstanceName.
// swag panics on duplicate registration, so only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			registerErr = err
			return
		}

		doc, err := json.Marshal(swagger)
		if err != nil {
			registerErr = err
			return
		}

		SwaggerInfo.SwaggerTemplate = string(doc)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return registerErr
}
