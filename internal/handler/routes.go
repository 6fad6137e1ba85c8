package handler

// APIPrefix is the canonical base path for the public HTTP API.
// Keep a single source of truth to avoid path drift across handlers, tests and the gateway client.
const APIPrefix = "/api"
