// Package magento provides a client for the Magento 2 REST API:
// https://adobe-commerce.redoc.ly/
//
// Features:
// - Bearer-token and admin-login authentication with automatic renewal.
// - Search criteria builder and iterator-based traversal of paginated listings.
// - Typed errors carrying the status code, path, and body of failed calls.
// - Generic request passthrough for endpoints without a dedicated helper.
package magento
