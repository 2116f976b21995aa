package model

// customerNameSeparator matches the spacing the form has always used
// between first and last name.
const customerNameSeparator = "    "

// Customer is a package owner.
//
// @Description Customer option
type Customer struct {
	ID        ID     `json:"id" example:"7"`
	FirstName string `json:"first_name" example:"Ada"`
	LastName  string `json:"last_name" example:"Lovelace"`
} // @name Customer

// DisplayName returns the option label shown for the customer.
func (c Customer) DisplayName() string {
	return c.FirstName + customerNameSeparator + c.LastName
}
