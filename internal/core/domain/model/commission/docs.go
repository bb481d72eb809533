// Package commission models the commission ledger kept for vendor parts of split
// orders. The platform accrues a commission on every vendor part; a Reversal
// records that the commission was given back after a customer cancellation.
package commission
