package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Organization Portal API",
        "description": "Event, fundraising and announcement services for student organizations",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Event lifecycle and approval"},
        {"name": "Registrations", "description": "Self-registration and attendance"},
        {"name": "Fundraising", "description": "Campaign management"},
        {"name": "Donations", "description": "Donation ledger and slips"},
        {"name": "Announcements", "description": "Organization announcements"},
        {"name": "Colors", "description": "Merch color swatches"},
        {"name": "Dashboard", "description": "Central office dashboard"},
        {"name": "Uploads", "description": "Media publish"}
    ],
    "paths": {
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event detail with effective status",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Events"],
                "summary": "Partial event update",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}}
            }
        },
        "/events/{id}/status": {
            "put": {
                "tags": ["Events"],
                "summary": "Transition event status",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown status"}}
            }
        },
        "/events/{id}/registrations": {
            "get": {
                "tags": ["Registrations"],
                "summary": "List registrations partitioned by role",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Registrations"],
                "summary": "Submit registration (self or bulk)",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Bulk shape requires a staff role"}}
            }
        },
        "/events/{id}/registrations/export": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Export attendance roster",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/events/{id}/slots": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Advisory remaining slots",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/{id}/poster": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload event poster",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/{id}/qr": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload payment QR",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/{id}/photos": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload gallery photos",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Per-file outcomes"}}
            }
        },
        "/fundraising": {
            "get": {
                "tags": ["Fundraising"],
                "summary": "List campaigns",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Fundraising"],
                "summary": "Create campaign",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/fundraising/{id}": {
            "get": {
                "tags": ["Fundraising"],
                "summary": "Get campaign",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/fundraising/{id}/status": {
            "put": {
                "tags": ["Fundraising"],
                "summary": "Transition campaign status",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/fundraising/{id}/poster": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload fundraising poster",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/fundraising/{id}/donations": {
            "get": {
                "tags": ["Donations"],
                "summary": "Campaign ledger with totals",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Donations"],
                "summary": "Record donation",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/donations/{id}/slip": {
            "get": {
                "tags": ["Donations"],
                "summary": "Signed slip download link",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No slip"}}
            },
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload donation slip",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "List announcements",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Create announcement",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/announcements/{id}/status": {
            "put": {
                "tags": ["Announcements"],
                "summary": "Transition announcement status",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/colors": {
            "get": {
                "tags": ["Colors"],
                "summary": "List merch colors",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/colors/{id}": {
            "get": {
                "tags": ["Colors"],
                "summary": "Get merch color",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/colors/{id}/photo": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload merch color photo",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/pending-counts": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Pending approval counts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/uploads/{kind}": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload by media kind",
                "parameters": [{"name": "kind", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown kind"}}
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
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
