// Package order holds the Order aggregate and its value objects.
//
// An order is created in Placed status from the checked-out cart (items,
// restaurant, payment). Its contents never change afterwards; only the status
// advances through FindingDriver, DriverAssigned, PickedUp and Delivered, and
// the driver is attached once on assignment.
//
// Prices are whole rupees. AmountToPay adds the fixed delivery (₹40) and
// platform (₹5) fees to the item total.
package order
