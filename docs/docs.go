// Package docs registers the OpenAPI description served at /swagger/doc.json.
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
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/catalog": {
            "get": {"tags": ["catalog"], "summary": "List categories and questions", "responses": {"200": {"description": "OK"}}}
        },
        "/score": {
            "post": {"tags": ["catalog"], "summary": "Score an answer map without a session", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/assessments": {
            "post": {"tags": ["assessments"], "summary": "Start an assessment", "responses": {"201": {"description": "Created"}}}
        },
        "/assessments/current": {
            "get": {"tags": ["assessments"], "summary": "Current wizard position", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/assessments/current/answer": {
            "put": {"tags": ["assessments"], "summary": "Answer the current question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/assessments/current/next": {
            "post": {"tags": ["assessments"], "summary": "Advance to the next question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/assessments/current/back": {
            "post": {"tags": ["assessments"], "summary": "Go back one screen", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/assessments/current/submit": {
            "post": {"tags": ["assessments"], "summary": "Submit the lead form and receive results", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}}
        },
        "/assessments/current/result": {
            "get": {"tags": ["assessments"], "summary": "Result of a completed assessment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/chat": {
            "post": {"tags": ["chat"], "summary": "Ask the finance assistant", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/chat/history": {
            "get": {"tags": ["chat"], "summary": "Chat history of the conversation in the token", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/calculators": {
            "get": {"tags": ["calculators"], "summary": "List tax calculators", "responses": {"200": {"description": "OK"}}}
        },
        "/calculators/{name}": {
            "post": {"tags": ["calculators"], "summary": "Apply a tax rate to an amount", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/admin/submissions": {
            "get": {"tags": ["admin"], "summary": "List archived submissions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/submissions/{id}": {
            "get": {"tags": ["admin"], "summary": "Get one submission", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Finance Health Assessment API",
	Description:      "Finance health self-assessment, lead capture and finance assistant chat",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
