// Package docs registers the swagger description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {
            "post": {
                "tags": ["Registration"],
                "summary": "Start registration",
                "responses": {
                    "202": {"description": "verification code sent"},
                    "409": {"description": "email already registered"}
                }
            }
        },
        "/register/verify": {
            "post": {
                "tags": ["Registration"],
                "summary": "Verify registration code",
                "responses": {
                    "201": {"description": "account created, session established"},
                    "400": {"description": "invalid or expired code"}
                }
            }
        },
        "/register/resend": {
            "post": {
                "tags": ["Registration"],
                "summary": "Resend registration code",
                "responses": {
                    "200": {"description": "code sent"},
                    "429": {"description": "resend throttled"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "session established or 2FA challenge issued"},
                    "401": {"description": "invalid credentials"}
                }
            }
        },
        "/login/2fa/verify": {
            "post": {
                "tags": ["Auth"],
                "summary": "Complete a 2FA login",
                "responses": {
                    "200": {"description": "session established"},
                    "400": {"description": "invalid or expired code"}
                }
            }
        },
        "/password-reset/request": {
            "post": {
                "tags": ["PasswordReset"],
                "summary": "Request a password reset code",
                "responses": {"202": {"description": "accepted"}}
            }
        },
        "/password-reset/complete": {
            "post": {
                "tags": ["PasswordReset"],
                "summary": "Complete a password reset",
                "responses": {
                    "200": {"description": "password changed"},
                    "403": {"description": "invalid or expired reset token"}
                }
            }
        },
        "/account/confirm": {
            "post": {
                "tags": ["Profile"],
                "summary": "Request a step-up confirmation code",
                "responses": {"200": {"description": "code sent"}}
            }
        },
        "/profile/password": {
            "put": {
                "tags": ["Profile"],
                "summary": "Change password",
                "responses": {
                    "200": {"description": "password changed"},
                    "403": {"description": "confirmation required"}
                }
            }
        },
        "/artworks": {
            "get": {
                "tags": ["Artworks"],
                "summary": "List the collection",
                "responses": {"200": {"description": "collection"}}
            },
            "post": {
                "tags": ["Artworks"],
                "summary": "Add a piece to the collection",
                "responses": {"201": {"description": "created"}}
            }
        },
        "/museum/search": {
            "get": {
                "tags": ["Museum"],
                "summary": "Search the museum collection",
                "responses": {"200": {"description": "matching object ids"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Galleria API",
	Description:      "Personal art collection service with OTP-verified accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
