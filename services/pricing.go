package services

import "github.com/homechefhq/homechef-api/models"

// DefaultOrderUnitPrice adalah tarif flat per order subscription yang
// di-generate. Order subscription tidak punya harga satuan sendiri;
// angka ini hanya dipakai untuk running total di assignment sampai ada
// pricing engine yang sebenarnya.
const DefaultOrderUnitPrice = 50.0

// Pricer menentukan kontribusi satu order subscription ke total_amount
// assignment.
type Pricer interface {
	UnitPrice(a *models.Assignment) float64
}

// FlatPricer mengembalikan tarif yang sama untuk semua assignment.
type FlatPricer struct {
	Amount float64
}

func (p FlatPricer) UnitPrice(_ *models.Assignment) float64 {
	return p.Amount
}
