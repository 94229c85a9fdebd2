// Package docs registra la especificación OpenAPI de la API en swag.
// Regenerable con `swag init -g cmd/api/main.go` a partir de las anotaciones godoc de los handlers.
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
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar profesional de salud",
                "parameters": [
                    {"description": "name, cpf, crm, password, role", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión con CPF",
                "parameters": [
                    {"description": "cpf, password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Listar usuarios (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserListResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/documents": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Listar documentos propios (sin contenido)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Crear documento (queda en draft)",
                "parameters": [
                    {"description": "type, content, patientInfo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DocumentEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/documents/templates/{type}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Texto base por tipo de documento",
                "parameters": [
                    {"type": "string", "description": "prescription | certificate | exam-request", "name": "type", "in": "path", "required": true},
                    {"type": "string", "description": "nombre del paciente", "name": "name", "in": "query"},
                    {"type": "string", "description": "CPF del paciente", "name": "cpf", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "birthDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TemplateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/documents/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Obtener documento",
                "parameters": [
                    {"type": "string", "description": "ID del documento", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/documents/{id}/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["documents"],
                "summary": "Descargar PDF del documento (cualquier estado)",
                "parameters": [
                    {"type": "string", "description": "ID del documento", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/signature/{id}/request": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Genera el PDF, lo envía al proveedor y deja el documento en pending-signature.",
                "produces": ["application/json"],
                "tags": ["signature"],
                "summary": "Solicitar firma gov.br",
                "parameters": [
                    {"type": "string", "description": "ID del documento", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignatureRequestResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/signature/{id}/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["signature"],
                "summary": "Verificar estado de la firma",
                "parameters": [
                    {"type": "string", "description": "ID del documento", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignatureVerifyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/signature/callback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signature"],
                "summary": "Webhook del proveedor de firma",
                "parameters": [
                    {"description": "token, status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignatureCallbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "cpf": {"type": "string", "example": "123.456.789-09"},
                "crm": {"type": "string", "example": "CRM/SP 123456"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["healthcare-professional", "admin"]}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "cpf": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "cpf": {"type": "string"},
                "crm": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.UserEnvelope": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/dto.UserResponse"}}
        },
        "dto.UserListResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "integer"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}
            }
        },
        "dto.PatientInfoRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "cpf": {"type": "string"},
                "birthDate": {"type": "string", "example": "1980-05-17"}
            }
        },
        "dto.PatientInfoResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "cpf": {"type": "string"},
                "birthDate": {"type": "string"}
            }
        },
        "dto.CreateDocumentRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["prescription", "certificate", "exam-request"]},
                "content": {"type": "string"},
                "patientInfo": {"$ref": "#/definitions/dto.PatientInfoRequest"}
            }
        },
        "dto.DocumentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "content": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "pending-signature", "signed", "expired"]},
                "signedAt": {"type": "string"},
                "user": {"type": "string"},
                "patientInfo": {"$ref": "#/definitions/dto.PatientInfoResponse"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.DocumentEnvelope": {
            "type": "object",
            "properties": {"document": {"$ref": "#/definitions/dto.DocumentResponse"}}
        },
        "dto.DocumentListResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "integer"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/dto.DocumentResponse"}}
            }
        },
        "dto.TemplateResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "dto.SignatureRequestResponse": {
            "type": "object",
            "properties": {
                "qrCode": {"type": "string"},
                "signatureUrl": {"type": "string"}
            }
        },
        "dto.SignatureVerifyResponse": {
            "type": "object",
            "properties": {"documentStatus": {"type": "string"}}
        },
        "dto.SignatureCallbackRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo metadatos exportados de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Receituário API",
	Description:      "Documentos clínicos con firma digital gov.br.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
