// Package inventory implements the reconciliation engine that runs on task
// completion and the required-versus-actual variance report.
//
// Reconciliation classifies operator-entered quantities by item category:
// linens and durable assets cycle between dirty and clean pools as matched
// pairs with no net stock change, while minibar, amenity, service, and
// voucher items are consumed outright. Cycling items never change the total
// asset count; consumables always do.
//
// All computation here is pure; the storage gateway executes the stock deltas
// and appends the audit transactions this package produces.
package inventory
