// Package events is the storefront event taxonomy: one payload type per
// topic, so a handler registered with broker.On receives a concrete shape
// instead of an untyped value.
//
// The Event interface is sealed; adding a topic means adding a type here.
package events
