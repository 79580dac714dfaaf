// Package store holds the session's canonical state: the product catalog,
// the cart and the customer details.
//
// Each store is mutated only through its own methods and announces every
// visible change on the bus. Accessors hand out copies.
package store
