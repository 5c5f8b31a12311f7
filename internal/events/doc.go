// Package events carries task lifecycle notifications from the service layer
// to observers such as the metrics counter and the audit log, without the
// service knowing who listens.
package events
