package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scanmark Attendance API",
        "description": "QR-code attendance tracking: roster ingestion, scan recording, reports",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Roster ingestion and identifier images"},
        {"name": "Attendance", "description": "Scan recording"},
        {"name": "Reports", "description": "Attendance report downloads"},
        {"name": "Admin", "description": "Session and data management"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/students/upload": {
            "post": {
                "tags": ["Students"],
                "summary": "Ingest a roster spreadsheet (.csv or .xlsx)",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to /students with a summary flash"},
                    "400": {"description": "Unsupported type, oversized file, or missing columns", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate registration number or email in dataset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{reg_no}/qr": {
            "get": {
                "tags": ["Students"],
                "summary": "Fetch one student's QR image",
                "produces": ["image/png"],
                "parameters": [
                    {"name": "reg_no", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PNG image"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/qrcodes/download": {
            "get": {
                "tags": ["Students"],
                "summary": "Download all QR images as a zip archive",
                "produces": ["application/zip"],
                "responses": {
                    "200": {"description": "Zip archive"}
                }
            }
        },
        "/attendance/mark": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a scan for today",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "reg_no", "in": "formData", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Marked or already marked today", "schema": {"$ref": "#/definitions/MarkResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the attendance report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"},
                    {"name": "date", "in": "query", "type": "string", "description": "Filter to one day, YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "CSV or PDF file"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Admin"],
                "summary": "Authenticate the admin and start a session",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "email", "in": "formData", "type": "string", "required": true},
                    {"name": "password", "in": "formData", "type": "string", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to /admin"}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "tags": ["Admin"],
                "summary": "End the admin session",
                "responses": {
                    "303": {"description": "Redirect to /admin"}
                }
            }
        },
        "/admin/delete": {
            "post": {
                "tags": ["Admin"],
                "summary": "Bulk-delete attendance or all data (session required)",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "scope", "in": "formData", "type": "string", "required": true, "description": "attendance or all"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /admin with a summary flash"},
                    "403": {"description": "Admin login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "MarkResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "duplicate"]},
                "message": {"type": "string"},
                "student": {"type": "string"},
                "reg_no": {"type": "string"},
                "time": {"type": "string"}
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
