// Package docs registers the GreenNest OpenAPI document with swag so
// http-swagger can serve it. The document is maintained by hand; running
// go generate ./cmd/api replaces it with one built from the handler annotations.
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
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Connectivity check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}}}}
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}}
        },
        "/signup": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.SignupRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}},
                    "400": {"description": "All fields required or user already exists", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/login": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "401": {"description": "User not found or invalid password", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/check-session": {
            "get": {"produces": ["application/json"], "tags": ["auth"], "summary": "Report the session state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.SessionResponse"}}}}
        },
        "/logout": {
            "post": {"produces": ["application/json"], "tags": ["auth"], "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}},
                    "500": {"description": "Logout failed", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/send-otp": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Email a password reset code",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.SendOTPRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "500": {"description": "Failed to send OTP email", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/reset-password": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Set a new password with a reset code",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.ResetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}},
                    "400": {"description": "Invalid OTP or OTP expired", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/get-profile": {
            "get": {"produces": ["application/json"], "tags": ["profile"], "summary": "Get profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.Response"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/update-profile": {
            "post": {"consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["profile"], "summary": "Update profile",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "phone", "in": "formData"},
                    {"type": "string", "name": "address", "in": "formData"},
                    {"type": "file", "name": "profilePic", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.UpdateResponse"}},
                    "400": {"description": "Invalid form or email already used", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "415": {"description": "Not an image", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/add-to-cart": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cart"], "summary": "Add a product to the cart",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/cart.Item"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Response"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/get-cart": {
            "get": {"produces": ["application/json"], "tags": ["cart"], "summary": "List the cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Response"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/remove-from-cart": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cart"], "summary": "Remove a product from the cart",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/cart.RemoveRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Response"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/checkout": {
            "post": {"produces": ["application/json"], "tags": ["cart"], "summary": "Place the order and empty the cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httputil.MessageResponse"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/submit-story": {
            "post": {"consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["stories"], "summary": "Submit a story",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "story", "in": "formData", "required": true},
                    {"type": "file", "name": "media", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/story.SubmitResponse"}},
                    "400": {"description": "All fields required", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}},
                    "415": {"description": "Unsupported media", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        },
        "/stories": {
            "get": {"produces": ["application/json"], "tags": ["stories"], "summary": "List stories",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/story.ListResponse"}}}}
        },
        "/uploads/{key}": {
            "get": {"tags": ["uploads"], "summary": "Download an uploaded file",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/httputil.ErrorResponse"}}
                }}
        }
    },
    "definitions": {
        "httputil.MessageResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "httputil.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "code": {"type": "string"}}},
        "session.Identity": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}}},
        "auth.SignupRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "auth.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "auth.LoginResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "user": {"$ref": "#/definitions/session.Identity"}}},
        "auth.SessionResponse": {"type": "object", "properties": {"loggedIn": {"type": "boolean"}, "user": {"$ref": "#/definitions/session.Identity"}}},
        "auth.SendOTPRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}}},
        "auth.ResetPasswordRequest": {"type": "object", "required": ["email", "otp", "newPassword"], "properties": {"email": {"type": "string"}, "otp": {"type": "string"}, "newPassword": {"type": "string"}}},
        "profile.Profile": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "address": {"type": "string"}, "profilePic": {"type": "string"}, "createdAt": {"type": "string"}}},
        "profile.Response": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "profile": {"$ref": "#/definitions/profile.Profile"}}},
        "profile.UpdateResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "user": {"$ref": "#/definitions/profile.Profile"}}},
        "cart.Item": {"type": "object", "required": ["productId"], "properties": {"productId": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "number"}, "image": {"type": "string"}}},
        "cart.Line": {"type": "object", "properties": {"productId": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "number"}, "image": {"type": "string"}, "quantity": {"type": "integer"}}},
        "cart.RemoveRequest": {"type": "object", "required": ["productId"], "properties": {"productId": {"type": "string"}}},
        "cart.Response": {"type": "object", "properties": {"success": {"type": "boolean"}, "cart": {"type": "array", "items": {"$ref": "#/definitions/cart.Line"}}}},
        "story.Story": {"type": "object", "properties": {"id": {"type": "string"}, "userId": {"type": "string"}, "name": {"type": "string"}, "story": {"type": "string"}, "media": {"type": "string"}, "createdAt": {"type": "string"}}},
        "story.SubmitResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "story": {"$ref": "#/definitions/story.Story"}}},
        "story.ListResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "stories": {"type": "array", "items": {"$ref": "#/definitions/story.Story"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GreenNest API",
	Description:      "Session-authenticated storefront backend: accounts, password reset, profiles, carts and stories.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
