// Package swagger holds the OpenAPI document served under /swagger/. It is
// maintained by hand in the layout swag emits; keep it in step with the
// annotations on the lending handlers.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List items",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "description": "Registers a lendable item. New items are always AVAILABLE.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Create item",
                "parameters": [
                    {
                        "description": "Item creation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateItemRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/items/{itemID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get item",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Item ID", "name": "itemID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/loans": {
            "get": {
                "description": "Status filters on the effective status: an ACTIVE loan past its due date is listed as OVERDUE only.",
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List loans",
                "parameters": [
                    {"enum": ["ACTIVE", "RETURNED", "OVERDUE"], "type": "string", "description": "Effective status", "name": "status", "in": "query"},
                    {"type": "string", "format": "uuid", "description": "Item ID", "name": "item_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "description": "Lends an AVAILABLE item. The response carries the stored status ACTIVE.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Create loan",
                "parameters": [
                    {
                        "description": "Loan creation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateLoanRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "ITEM_UNAVAILABLE", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/loans/{loanID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Get loan",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Loan ID", "name": "loanID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/returns": {
            "post": {
                "description": "Closes an ACTIVE loan and makes the item AVAILABLE. Note is stored as the loan's ReturnNote.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Return loan",
                "parameters": [
                    {
                        "description": "Return request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ReturnLoanRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "LOAN_NOT_RETURNABLE", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/exec": {
            "get": {
                "description": "Single-endpoint form of the API. GET health|items|loans, POST items|loans|returns.",
                "produces": ["application/json"],
                "tags": ["exec"],
                "summary": "Action dispatch",
                "parameters": [
                    {"enum": ["health", "items", "loans", "returns"], "type": "string", "description": "Operation", "name": "action", "in": "query", "required": true},
                    {"type": "string", "description": "Loan status filter (action=loans)", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "description": "Single-endpoint form of the API. GET health|items|loans, POST items|loans|returns.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exec"],
                "summary": "Action dispatch",
                "parameters": [
                    {"enum": ["health", "items", "loans", "returns"], "type": "string", "description": "Operation", "name": "action", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateItemRequest": {
            "type": "object",
            "required": ["AssetTag", "Category", "Name"],
            "properties": {
                "AssetTag": {"type": "string", "maxLength": 100, "example": "LAP-0042"},
                "Category": {"type": "string", "maxLength": 100, "example": "Laptop"},
                "Location": {"type": "string", "maxLength": 255, "example": "IT storage room"},
                "Name": {"type": "string", "maxLength": 255, "example": "Dell Latitude 7440"},
                "Note": {"type": "string", "maxLength": 2000, "example": "Charger included"},
                "Status": {"type": "string", "enum": ["AVAILABLE"], "example": "AVAILABLE"}
            }
        },
        "CreateLoanRequest": {
            "type": "object",
            "required": ["BorrowerContact", "BorrowerName", "DueDate", "ItemID", "LoanDate"],
            "properties": {
                "BorrowerContact": {"type": "string", "maxLength": 255, "example": "bruno@example.com"},
                "BorrowerName": {"type": "string", "maxLength": 255, "example": "Bruno Costa"},
                "BorrowerUnit": {"type": "string", "maxLength": 255, "example": "Finance"},
                "DueDate": {"type": "string", "example": "2025-06-17"},
                "ItemID": {"type": "string", "maxLength": 255, "example": "123e4567-e89b-12d3-a456-426614174000"},
                "LoanDate": {"type": "string", "example": "2025-06-10"},
                "Note": {"type": "string", "maxLength": 2000, "example": "For the offsite"}
            }
        },
        "ReturnLoanRequest": {
            "type": "object",
            "required": ["LoanID"],
            "properties": {
                "LoanID": {"type": "string", "maxLength": 255, "example": "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
                "Note": {"type": "string", "maxLength": 2000, "example": "Returned with scratches"},
                "ReturnDate": {"type": "string", "example": "2025-06-15"}
            }
        },
        "Item": {
            "type": "object",
            "properties": {
                "AssetTag": {"type": "string", "example": "LAP-0042"},
                "Category": {"type": "string", "example": "Laptop"},
                "CreatedAt": {"type": "string", "example": "2025-06-10T09:30:00Z"},
                "ItemID": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "Location": {"type": "string", "example": "IT storage room"},
                "Name": {"type": "string", "example": "Dell Latitude 7440"},
                "Note": {"type": "string", "example": "Charger included"},
                "Status": {"type": "string", "enum": ["AVAILABLE", "ON_LOAN"], "example": "AVAILABLE"}
            }
        },
        "Loan": {
            "type": "object",
            "properties": {
                "BorrowerContact": {"type": "string", "example": "bruno@example.com"},
                "BorrowerName": {"type": "string", "example": "Bruno Costa"},
                "BorrowerUnit": {"type": "string", "example": "Finance"},
                "CreatedAt": {"type": "string", "example": "2025-06-10T09:30:00Z"},
                "DueDate": {"type": "string", "example": "2025-06-17"},
                "ItemID": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "LoanDate": {"type": "string", "example": "2025-06-10"},
                "LoanID": {"type": "string", "example": "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
                "Note": {"type": "string", "example": "For the offsite"},
                "ReturnDate": {"type": "string", "example": "2025-06-15"},
                "ReturnNote": {"type": "string", "example": "Returned with scratches"},
                "Status": {"type": "string", "enum": ["ACTIVE", "RETURNED", "OVERDUE"], "example": "ACTIVE"}
            }
        },
        "HealthStatus": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "ok"},
                "event_bus": {"type": "string", "example": "ok"},
                "redis": {"type": "string", "example": "disabled"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/EnvelopeError"},
                "ok": {"type": "boolean"}
            }
        },
        "EnvelopeError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ITEM_UNAVAILABLE"},
                "message": {"type": "string", "example": "item is already on loan"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/EnvelopeError"},
                "ok": {"type": "boolean", "example": false}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "LibItemsFlow API",
	Description:      "Item lending ledger: register items, lend them, return them, list loans by effective status.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
