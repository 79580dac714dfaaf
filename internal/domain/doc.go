// Package domain holds the storefront data model shared by the client stores,
// the HTTP client and the reference API server.
//
// Values here carry no behaviour beyond small derived accessors; ownership
// and mutation rules live in package store.
package domain
