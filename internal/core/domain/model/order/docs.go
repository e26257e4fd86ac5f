// Package order contains the Order aggregate and its lifecycle state machine.
//
// An Order is placed by a customer and then advanced by a single delivery
// partner through the fixed forward-only lifecycle
// Pending -> Accepted -> Out for Delivery -> Delivered.
// The aggregate enforces single-step transitions and single-assignee
// exclusivity; the persistence layer additionally guards the accept race
// with a conditional update keyed on the expected prior status.
package order
