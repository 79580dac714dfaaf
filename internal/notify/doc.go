// Package notify announces placed orders on a RabbitMQ queue so that
// fulfilment can pick them up outside the API process.
package notify
