// Package server is the catalog and order HTTP API the storefront client
// talks to.
//
//	GET  /api/weblarek/product/      {total, items}
//	GET  /api/weblarek/product/{id}  one product, 404 {"error":"NotFound"}
//	POST /api/weblarek/order/        {id, total} or 400 {"error": reason}
//	GET  /health
//
// An order is accepted only when every item exists and is priced and the
// stated total equals the sum of the item prices. Accepted orders are stored
// and then handed to the OrderNotifier; a failed notification does not fail
// the request.
package server
