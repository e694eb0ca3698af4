package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// openAPIDoc mirrors the handler annotations in server.go.
const openAPIDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "notifyd admin API",
    "description": "Topic administration and publishing for an in-process notification engine.",
    "version": "1.0"
  },
  "basePath": "/",
  "schemes": ["http"],
  "paths": {
    "/topics": {
      "get": {
        "tags": ["topics"], "summary": "List topics", "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TopicsResponse"}}}
      },
      "post": {
        "tags": ["topics"], "summary": "Create a topic",
        "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.CreateTopicRequest"}}],
        "responses": {
          "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.TopicStatus"}},
          "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
          "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      }
    },
    "/topics/{name}": {
      "get": {
        "tags": ["topics"], "summary": "Get one topic", "produces": ["application/json"],
        "parameters": [{"in": "path", "name": "name", "type": "string", "required": true}],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TopicStatus"}},
          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      },
      "delete": {
        "tags": ["topics"], "summary": "Remove a topic",
        "parameters": [{"in": "path", "name": "name", "type": "string", "required": true}],
        "responses": {
          "204": {"description": "No Content"},
          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      }
    },
    "/topics/{name}/publish": {
      "post": {
        "tags": ["topics"], "summary": "Publish a value",
        "description": "Stores the value, assigns the next sequence number and notifies subscribers asynchronously.",
        "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [
          {"in": "path", "name": "name", "type": "string", "required": true},
          {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.PublishRequest"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PublishResponse"}},
          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
          "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      }
    },
    "/status": {
      "get": {
        "tags": ["engine"], "summary": "Engine status", "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
      }
    }
  },
  "definitions": {
    "types.CreateTopicRequest": {
      "type": "object",
      "properties": {"name": {"type": "string", "example": "AAPL"}, "value": {"type": "number", "example": 150}}
    },
    "types.PublishRequest": {
      "type": "object",
      "properties": {"value": {"type": "number", "example": 145}}
    },
    "types.PublishResponse": {
      "type": "object",
      "properties": {
        "topic": {"type": "string", "example": "AAPL"},
        "value": {"type": "number", "example": 145},
        "seq": {"type": "integer", "example": 1},
        "published_unix_nano": {"type": "integer", "example": 1700000000000000000}
      }
    },
    "types.TopicStatus": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "example": "AAPL"},
        "value": {"type": "number", "example": 145},
        "seq": {"type": "integer", "example": 1},
        "subscribers": {"type": "integer", "example": 2},
        "updated_unix": {"type": "integer", "example": 1700000000}
      }
    },
    "types.TopicsResponse": {
      "type": "object",
      "properties": {"topics": {"type": "array", "items": {"$ref": "#/definitions/types.TopicStatus"}}}
    },
    "types.StatusResponse": {
      "type": "object",
      "properties": {
        "state": {"type": "string", "example": "running"},
        "delivery_mode": {"type": "string", "example": "ordered"},
        "max_concurrency": {"type": "integer", "example": 0},
        "topics": {"type": "array", "items": {"$ref": "#/definitions/types.TopicStatus"}},
        "subscriptions": {"type": "integer", "example": 3},
        "published_total": {"type": "integer", "example": 12},
        "delivered_total": {"type": "integer", "example": 24},
        "failed_total": {"type": "integer", "example": 1},
        "failures_dropped": {"type": "integer", "example": 0},
        "pending": {"type": "integer", "example": 0},
        "uptime_seconds": {"type": "integer", "example": 3600},
        "server_time_unix": {"type": "integer", "example": 1700000000}
      }
    },
    "types.ErrorResponse": {
      "type": "object",
      "properties": {"error": {"type": "string", "example": "unknown topic: GOOG"}, "code": {"type": "integer", "example": 404}}
    }
  }
}`

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string { return openAPIDoc }

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

// MountSwagger serves the swagger UI under /swagger/ and the document at
// /swagger/doc.json.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
