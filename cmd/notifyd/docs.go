package main

// General API documentation for swaggo. The served document lives in
// internal/httpapi/swagger.go; keep both in sync with the handler annotations.
//
// @title           notifyd admin API
// @version         1.0
// @description     Topic administration and publishing for an in-process notification engine.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
