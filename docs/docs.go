package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Commsdesk API",
        "description": "Support-ticket dashboard: communications, ticket threads, replies, payouts and customer actions",
        "version": "1.0"
    },
    "basePath": "/",
    "paths": {
        "/api/communications": {
            "get": {
                "tags": [
                    "communications"
                ],
                "summary": "List communications",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "customer_name",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "customer name contains"
                    },
                    {
                        "name": "email",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "email contains"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "subject contains"
                    },
                    {
                        "name": "ticket_number",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "ticket number contains"
                    },
                    {
                        "name": "order_number",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "order number contains"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "status contains"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "date contains"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CommunicationsResponse"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/tickets/{ticket}": {
            "get": {
                "tags": [
                    "tickets"
                ],
                "summary": "Ticket details",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.TicketResponse"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/tickets/{ticket}/comments": {
            "get": {
                "tags": [
                    "tickets"
                ],
                "summary": "Ticket comments",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "comments": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Comment"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tickets"
                ],
                "summary": "Add a public reply",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "reply",
                        "schema": {
                            "$ref": "#/definitions/handlers.ReplyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ticket": {
                                    "$ref": "#/definitions/models.TicketMeta"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/tickets/{ticket}/upload": {
            "post": {
                "tags": [
                    "tickets"
                ],
                "summary": "Upload an attachment",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "type": "file",
                        "description": "attachment"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "upload": {
                                    "type": "object",
                                    "properties": {
                                        "token": {
                                            "type": "string"
                                        }
                                    }
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/tickets/{ticket}/jewelry": {
            "get": {
                "tags": [
                    "tickets"
                ],
                "summary": "Jewelry images of a ticket",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "jewelry_images": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.JewelryImage"
                                    }
                                }
                            }
                        }
                    }
                }
            }
        },
        "/api/templates": {
            "get": {
                "tags": [
                    "templates"
                ],
                "summary": "Response templates",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "templates": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/compose.Template"
                                    }
                                },
                                "default": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/api/tickets/{ticket}/compose": {
            "post": {
                "tags": [
                    "templates"
                ],
                "summary": "Render a response template for a ticket",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "ticket",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "ticket number"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "template and appraisal rows",
                        "schema": {
                            "$ref": "#/definitions/handlers.ComposeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/compose.Message"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/payments/{vendor}": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Send a payout",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "vendor",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "paypal",
                            "venmo",
                            "tremendous"
                        ]
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "payment",
                        "schema": {
                            "$ref": "#/definitions/models.PaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.PaymentResult"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/customer-actions/process": {
            "put": {
                "tags": [
                    "actions"
                ],
                "summary": "Process a customer action",
                "description": "Forwards each (action, ticket_number) pair at most once. 409 DUPLICATE_ACTION when the pair already completed, 409 ACTION_IN_FLIGHT while another submission of the pair is pending.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "action",
                        "schema": {
                            "$ref": "#/definitions/models.ActionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.ActionResult"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/order-complete": {
            "post": {
                "tags": [
                    "communications"
                ],
                "summary": "Map an order-complete payload to a communication row",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "order",
                        "schema": {
                            "$ref": "#/definitions/tickets.OrderCompletePayload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Communication"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {
                            "type": "string"
                        },
                        "message": {
                            "type": "string"
                        },
                        "details": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "handlers.CommunicationsResponse": {
            "type": "object",
            "properties": {
                "communications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Communication"
                    }
                },
                "sample": {
                    "type": "boolean"
                }
            }
        },
        "handlers.CustomerResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "handlers.TicketResponse": {
            "type": "object",
            "properties": {
                "ticket_number": {
                    "type": "string"
                },
                "ticket": {
                    "$ref": "#/definitions/models.TicketMeta"
                },
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Comment"
                    }
                },
                "jewelry_images": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.JewelryImage"
                    }
                },
                "customer": {
                    "$ref": "#/definitions/handlers.CustomerResponse"
                },
                "suggested_amount": {
                    "type": "number"
                }
            }
        },
        "handlers.ReplyRequest": {
            "type": "object",
            "properties": {
                "body": {
                    "type": "string"
                }
            },
            "required": [
                "body"
            ]
        },
        "handlers.ComposeRequest": {
            "type": "object",
            "properties": {
                "template_id": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/compose.AppraisalRow"
                    }
                }
            }
        },
        "compose.AppraisalRow": {
            "type": "object",
            "properties": {
                "item_id": {
                    "type": "integer"
                },
                "metal": {
                    "type": "string"
                },
                "purity": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                },
                "remarks": {
                    "type": "string"
                },
                "image_path": {
                    "type": "string"
                }
            }
        },
        "compose.Message": {
            "type": "object",
            "properties": {
                "template_id": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "html": {
                    "type": "boolean"
                }
            }
        },
        "compose.Template": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "html": {
                    "type": "boolean"
                }
            }
        },
        "models.Communication": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "customer_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "ticket_number": {
                    "type": "string"
                },
                "order_number": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "Pending",
                        "In Progress",
                        "Completed",
                        "Cancelled"
                    ]
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "models.Party": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "models.Attachment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "content_url": {
                    "type": "string"
                },
                "content_type": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "inline": {
                    "type": "boolean"
                }
            }
        },
        "models.Comment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "type": {
                    "type": "string"
                },
                "author_id": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "html_body": {
                    "type": "string"
                },
                "plain_body": {
                    "type": "string"
                },
                "public": {
                    "type": "boolean"
                },
                "channel": {
                    "type": "string"
                },
                "from": {
                    "$ref": "#/definitions/models.Party"
                },
                "to": {
                    "$ref": "#/definitions/models.Party"
                },
                "created_at": {
                    "type": "string"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Attachment"
                    }
                }
            }
        },
        "models.TicketMeta": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "requester_id": {
                    "type": "integer"
                },
                "assignee_id": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.JewelryImage": {
            "type": "object",
            "properties": {
                "jewelry_item_id": {
                    "type": "integer"
                },
                "weight": {
                    "type": "number"
                },
                "purity": {
                    "type": "string"
                },
                "metal_type": {
                    "type": "string"
                },
                "unit_of_measure": {
                    "type": "string"
                },
                "estimated_value": {
                    "type": "number"
                },
                "after_fees_value": {
                    "type": "number"
                },
                "price_per_gram": {
                    "type": "number"
                },
                "image_data": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "models.PaymentRequest": {
            "type": "object",
            "properties": {
                "recipient": {
                    "type": "string"
                },
                "recipientType": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "currency": {
                    "type": "string",
                    "enum": [
                        "USD",
                        "PHP"
                    ]
                },
                "note": {
                    "type": "string"
                }
            },
            "required": [
                "recipient",
                "amount"
            ]
        },
        "models.PaymentResult": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.ActionRequest": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "ticket_number": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            },
            "required": [
                "action",
                "ticket_number"
            ]
        },
        "models.ActionResult": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "tickets.OrderCompletePayload": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "number": {
                    "type": "string"
                },
                "customer_name": {
                    "type": "string"
                },
                "customer_email": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            },
            "required": [
                "id",
                "number"
            ]
        }
    }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
