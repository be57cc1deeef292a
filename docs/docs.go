// Package docs registers the OpenAPI description of the dashboard gateway
// with swag so echo-swagger can serve it at /swagger/*.
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
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login page",
                "parameters": [
                    {"type": "string", "description": "Local path to continue to", "name": "next", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Already logged in"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}}
                }
            }
        },
        "/change-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/forms/{variant}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Initial state of a service form",
                "parameters": [
                    {"type": "string", "description": "admin, management, client or recurring", "name": "variant", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.formResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{variant}/resolve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Apply a field change to a service form",
                "parameters": [
                    {"type": "string", "description": "admin, management, client or recurring", "name": "variant", "in": "path", "required": true},
                    {"description": "Current selection and the changed field", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resolveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.formResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{variant}/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Submit a service form",
                "parameters": [
                    {"type": "string", "description": "admin, management, client or recurring", "name": "variant", "in": "path", "required": true},
                    {"description": "Form selection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.selectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.submitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "List a backend collection",
                "parameters": [
                    {"type": "string", "description": "Collection name (clients, services, ...)", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/{resource}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get one item of a backend collection",
                "parameters": [
                    {"type": "string", "description": "Collection name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/{resource}/{id}/approve": {
            "post": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Approve a service or certificate",
                "parameters": [
                    {"type": "string", "description": "services or certificates", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.approveResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/recurring-services/{id}/{action}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Pause, resume or generate the next service of a recurring schedule",
                "parameters": [
                    {"type": "integer", "description": "Recurring service ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "pause, resume or generate_next_service", "name": "action", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.approveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Notification": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.Service": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "status": {"type": "string"},
                "scheduled_date": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/domain.Notification"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "next": {"type": "string"}
            }
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "required": ["current_password", "new_password", "confirm_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 8},
                "confirm_password": {"type": "string"}
            }
        },
        "handler.sessionView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "is_first_login": {"type": "boolean"},
                "token_expires_at": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "redirect": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.sessionView"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "loading": {"type": "boolean"},
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/handler.sessionView"}
            }
        },
        "handler.selectionRequest": {
            "type": "object",
            "properties": {
                "client": {"type": "integer"},
                "location": {"type": "integer"},
                "type_service": {"type": "integer"},
                "waste": {"type": "integer"},
                "waste_subcategory": {"type": "integer"},
                "scheduled_date": {"type": "string"},
                "frequency": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "handler.resolveRequest": {
            "type": "object",
            "properties": {
                "selection": {"$ref": "#/definitions/handler.selectionRequest"},
                "field": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "handler.formResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "object"},
                "notice": {"type": "string"}
            }
        },
        "handler.submitResponse": {
            "type": "object",
            "properties": {
                "service": {"$ref": "#/definitions/domain.Service"},
                "redirect": {"type": "string"}
            }
        },
        "handler.approveResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "object"},
                "_links": {"type": "object", "properties": {"self": {"type": "string"}}}
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
	Title:            "EcoTrash dashboard gateway",
	Description:      "Session, route guard and service form endpoints of the EcoTrash dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
