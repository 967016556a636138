// Package delivery provides the delivery ledger entry of the automail domain.
// A Record is created once per delivered item and is what the report and the
// delivery ledgers store.
package delivery
