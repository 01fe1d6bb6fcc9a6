package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "University API", "description": "Universities, colleges, departments, programs, courses and their staff.", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "paths": {
        "/universities": {"get": {"tags": ["Universities"], "summary": "List universities", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Universities"], "summary": "Create in universities", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/universities/{id}": {"get": {"tags": ["Universities"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Universities"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Universities"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Universities"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/colleges": {"get": {"tags": ["Colleges"], "summary": "List colleges", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Colleges"], "summary": "Create in colleges", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/colleges/{id}": {"get": {"tags": ["Colleges"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Colleges"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Colleges"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Colleges"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/departments": {"get": {"tags": ["Departments"], "summary": "List departments", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Departments"], "summary": "Create in departments", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/departments/{id}": {"get": {"tags": ["Departments"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Departments"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Departments"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Departments"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/programs": {"get": {"tags": ["Programs"], "summary": "List programs", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Programs"], "summary": "Create in programs", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/programs/{id}": {"get": {"tags": ["Programs"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Programs"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Programs"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Programs"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/courses": {"get": {"tags": ["Courses"], "summary": "List courses", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Courses"], "summary": "Create in courses", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/courses/{id}": {"get": {"tags": ["Courses"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Courses"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Courses"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Courses"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/admin-units": {"get": {"tags": ["AdminUnits"], "summary": "List admin-units", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["AdminUnits"], "summary": "Create in admin-units", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/admin-units/{id}": {"get": {"tags": ["AdminUnits"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["AdminUnits"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["AdminUnits"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["AdminUnits"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/deanships": {"get": {"tags": ["Deanships"], "summary": "List deanships", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}}, "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}, "post": {"tags": ["Deanships"], "summary": "Create in deanships", "produces": ["application/json"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/deanships/{id}": {"get": {"tags": ["Deanships"], "summary": "Get by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]}, "patch": {"tags": ["Deanships"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "put": {"tags": ["Deanships"], "summary": "Update by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Deanships"], "summary": "Delete by id", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/courses/programs/{programId}": {"get": {"tags": ["Courses"], "summary": "Courses of a program", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "programId", "type": "string", "required": true}, {"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}},
        "/programs/departments/{departmentId}": {"get": {"tags": ["Programs"], "summary": "Programs of a department", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "departmentId", "type": "string", "required": true}, {"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}},
        "/departments/colleges/{collegeId}": {"get": {"tags": ["Departments"], "summary": "Departments of a college", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "collegeId", "type": "string", "required": true}, {"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}]}},
        "/users": {"get": {"tags": ["Users"], "summary": "List users", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer", "required": false, "description": "Page number, 404 when out of range"}, {"in": "query", "name": "limit", "type": "integer", "required": false, "description": "Page size, default 10"}, {"in": "query", "name": "sort", "type": "string", "required": false, "description": "Comma separated keys, prefix - for descending"}, {"in": "query", "name": "fields", "type": "string", "required": false, "description": "Projected fields, prefix - to exclude"}], "security": [{"BearerAuth": []}]}},
        "/users/{id}": {"get": {"tags": ["Users"], "summary": "Get user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}, "patch": {"tags": ["Users"], "summary": "Update user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Users"], "summary": "Delete user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "security": [{"BearerAuth": []}]}},
        "/auth/signup": {"post": {"tags": ["Authentication"], "summary": "Register an account", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/login": {"post": {"tags": ["Authentication"], "summary": "Authenticate user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/refresh-token": {"post": {"tags": ["Authentication"], "summary": "Rotate refresh token", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/logout": {"post": {"tags": ["Authentication"], "summary": "Revoke refresh token", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/auth/profile": {"get": {"tags": ["Authentication"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}},
        "/auth/profile/avatar": {"get": {"tags": ["Authentication"], "summary": "Signed profile image link", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Authentication"], "summary": "Upload profile image", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "formData", "name": "image", "type": "file", "required": true}], "security": [{"BearerAuth": []}]}},
        "/auth/verify/{token}": {"get": {"tags": ["Authentication"], "summary": "Verify email", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "token", "type": "string", "required": true}]}},
        "/auth/resend-verification": {"post": {"tags": ["Authentication"], "summary": "Resend verification email", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/forgot-password": {"post": {"tags": ["Authentication"], "summary": "Request password reset", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/reset-password/{token}": {"patch": {"tags": ["Authentication"], "summary": "Reset password", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "token", "type": "string", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}]}},
        "/auth/change-password": {"patch": {"tags": ["Authentication"], "summary": "Change password", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}], "security": [{"BearerAuth": []}]}},
        "/files/{token}": {"get": {"tags": ["Files"], "summary": "Download through a signed link", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"in": "path", "name": "token", "type": "string", "required": true}]}}
    },
    "definitions": {
        "FieldError": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}}},
        "Envelope": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}, "data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}}},
        "ListEnvelope": {"type": "object", "properties": {"status": {"type": "string"}, "results": {"type": "integer"}, "total": {"type": "integer"}, "page": {"type": "integer"}, "totalPages": {"type": "integer"}, "data": {"type": "array", "items": {"type": "object"}}}}
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
