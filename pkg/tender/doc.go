// Package tender does the cash arithmetic of the point-of-sale checkout:
// parsing and formatting rupee amounts, computing change and validating the
// cash handed over against the bill total.
//
// Amounts are held in minor units (cents) so no floating point is involved.
//
//	total, _ := tender.Parse("1,250.50")
//	cash, _ := tender.Parse("1500")
//	if err := tender.Validate(total, cash); err != nil {
//		return err
//	}
//	fmt.Println(tender.Change(total, cash)) // Rs. 249.50
//
// A cash amount of zero is not an error: the checkout treats it as "not entered
// yet" and computes no change.
package tender
