package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "BizOps API",
        "description": "Back office API for submissions, orders and proofs with archive support",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Listings", "description": "Archive-aware listings"},
        {"name": "Archives", "description": "Archive and restore commands"},
        {"name": "Proofs", "description": "Proof overviews"},
        {"name": "Orders", "description": "Order history"},
        {"name": "Exports", "description": "CSV and PDF exports"}
    ],
    "parameters": {
        "filter": {"name": "filter", "in": "query", "type": "string", "enum": ["actives", "archived", "all"], "default": "actives"},
        "page": {"name": "page", "in": "query", "type": "integer", "default": 1},
        "pageSize": {"name": "pageSize", "in": "query", "type": "integer", "default": 20, "maximum": 100},
        "kind": {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["submission", "order", "proof"]},
        "id": {"name": "id", "in": "path", "required": true, "type": "string"}
    },
    "paths": {
        "/submissions": {
            "get": {
                "tags": ["Listings"],
                "summary": "List submissions",
                "parameters": [{"$ref": "#/parameters/filter"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/orders": {
            "get": {
                "tags": ["Listings"],
                "summary": "List orders",
                "parameters": [{"$ref": "#/parameters/filter"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/proofs": {
            "get": {
                "tags": ["Listings"],
                "summary": "List proofs",
                "parameters": [{"$ref": "#/parameters/filter"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/archives/{kind}/{id}": {
            "post": {
                "tags": ["Archives"],
                "summary": "Archive an entity",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ArchiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "Archived", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid kind or reason", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Entity not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Archives"],
                "summary": "Restore an archived entity",
                "parameters": [{"$ref": "#/parameters/kind"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Restored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Entity not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/proofs/latest": {
            "get": {
                "tags": ["Proofs"],
                "summary": "Latest proof of each order",
                "parameters": [{"name": "orderId", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/proofs/overview": {
            "get": {
                "tags": ["Proofs"],
                "summary": "All proof versions with order information",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/orders/{id}/history": {
            "get": {
                "tags": ["Orders"],
                "summary": "Status history of an order",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/{table}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a listing",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "table", "in": "path", "required": true, "type": "string", "enum": ["submissions", "orders", "proofs"]},
                    {"$ref": "#/parameters/filter"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Process metrics summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "ArchiveRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string", "maxLength": 500}
            }
        },
        "ArchiveInfo": {
            "type": "object",
            "properties": {
                "archivedAt": {"type": "string", "format": "date-time"},
                "archivedBy": {"type": "string"},
                "archiveReason": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
