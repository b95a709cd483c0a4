// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize"
        }
    },
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "User registration",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid input or email already registered"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/profile": {
            "get": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/api/categories": {
            "post": {
                "tags": ["categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Create category",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing name or name already exists"}
                }
            },
            "get": {
                "tags": ["categories"],
                "security": [{"BearerAuth": []}],
                "summary": "List the caller's categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/categories/{id}": {
            "put": {
                "tags": ["categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Rename category",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete category",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Category is part of the default set"},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/expenses": {
            "post": {
                "tags": ["expenses"],
                "security": [{"BearerAuth": []}],
                "summary": "Create expense",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid input or unknown category"}
                }
            },
            "get": {
                "tags": ["expenses"],
                "security": [{"BearerAuth": []}],
                "summary": "List the caller's expenses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/expenses/{id}": {
            "get": {
                "tags": ["expenses"],
                "security": [{"BearerAuth": []}],
                "summary": "Get expense",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["expenses"],
                "security": [{"BearerAuth": []}],
                "summary": "Update expense",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input or category not linked to caller"},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["expenses"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete expense",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Not found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Finanças API",
	Description:      "Personal-finance tracker: JWT auth, categories, expenses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
