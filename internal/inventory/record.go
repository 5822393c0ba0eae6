package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one inventory item. The id is fixed at construction; name,
// quantity and price change only through the setters. Record performs no
// validation of its own — well-formed values are the caller's problem.
type Record struct {
	id       int64
	name     string
	quantity int64
	price    decimal.Decimal
}

func NewRecord(id int64, name string, quantity int64, price decimal.Decimal) *Record {
	return &Record{id: id, name: name, quantity: quantity, price: price}
}

func (r *Record) ID() int64              { return r.id }
func (r *Record) Name() string           { return r.name }
func (r *Record) Quantity() int64        { return r.quantity }
func (r *Record) Price() decimal.Decimal { return r.price }

func (r *Record) SetName(name string)            { r.name = name }
func (r *Record) SetQuantity(quantity int64)     { r.quantity = quantity }
func (r *Record) SetPrice(price decimal.Decimal) { r.price = price }

func (r *Record) String() string {
	return fmt.Sprintf("Record[ID=%d, Name=%q, Quantity=%d, Price=$%s]",
		r.id, r.name, r.quantity, r.price.StringFixed(2))
}
