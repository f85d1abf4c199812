// Package docs registers the OpenAPI document served at /swagger/. It follows
// the layout swag init emits for the annotations on cmd/server and the
// handlers; keep the two in step when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Landing page model",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.landingResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.adminOverviewResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/reset-route": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reset route status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resetRouteResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Toggle reset route",
                "parameters": [
                    {"description": "Desired state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resetRouteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resetRouteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "OAuth callback",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "Opaque state issued by /auth/login", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "501": {"description": "Not Implemented", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Begin OAuth login",
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login page model",
                "parameters": [
                    {"type": "string", "description": "Why the visitor was redirected", "name": "reason", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginPageResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Claims"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["setup"],
                "summary": "Reset installation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resetResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/setup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["setup"],
                "summary": "Setup status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.setupStatusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/setup/oauth": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["setup"],
                "summary": "Configure OAuth provider",
                "parameters": [
                    {"description": "Provider credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.oauthConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.setupStatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.Claims": {
            "type": "object",
            "properties": {
                "avatarUrl": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "isAdmin": {"type": "boolean"},
                "isOwner": {"type": "boolean"},
                "login": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.adminOverviewResponse": {
            "type": "object",
            "properties": {
                "ownerLogin": {"type": "string"},
                "resetRouteDisabled": {"type": "boolean"},
                "setupLocked": {"type": "boolean"},
                "viewer": {"$ref": "#/definitions/domain.Claims"}
            }
        },
        "handler.landingResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "message": {"type": "string"},
                "next": {"type": "string"},
                "reason": {"type": "string"},
                "setupOpen": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.Claims"}
            }
        },
        "handler.loginPageResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "configured": {"type": "boolean"},
                "message": {"type": "string"},
                "reason": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.Claims"}
            }
        },
        "handler.oauthConfigRequest": {
            "type": "object",
            "required": ["clientId", "clientSecret", "provider"],
            "properties": {
                "clientId": {"type": "string"},
                "clientSecret": {"type": "string"},
                "provider": {"type": "string", "enum": ["github"]},
                "redirectUri": {"type": "string"},
                "scopes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.resetResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.resetRouteRequest": {
            "type": "object",
            "required": ["disabled"],
            "properties": {
                "disabled": {"type": "boolean"}
            }
        },
        "handler.resetRouteResponse": {
            "type": "object",
            "properties": {
                "disabled": {"type": "boolean"}
            }
        },
        "handler.setupStatusResponse": {
            "type": "object",
            "properties": {
                "configured": {"type": "boolean"},
                "open": {"type": "boolean"},
                "provider": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gatekeeper API",
	Description:      "First-run bootstrap, OAuth login and session authorization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
