// Package apiclient is the HTTP client for the storefront API: catalog
// reads and order placement. It satisfies checkout.API.
package apiclient
