// Package broker provides the publish/subscribe bus every storefront
// component talks through.
//
// A Broker is created once per session and handed to components explicitly.
// It knows nothing about products or orders: payloads implement Event and
// name their own topic, subscriptions choose topics with a Matcher (exact,
// prefix, regular expression or all), and On gives handlers a concrete
// payload type.
//
// Dispatch is synchronous and re-entrant. Same-topic handlers run in
// registration order; no ordering holds across topics.
package broker
