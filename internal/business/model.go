package business

import "time"

// Business is a directory record for one company. Optional columns are
// pointers so absent values serialize as null, matching the wire shape
// the client expects. CustomFields is an open key/value mapping stored
// as jsonb.
type Business struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	TaxID         string            `json:"taxId"`
	Address       *string           `json:"address"`
	Phone         *string           `json:"phone"`
	Email         *string           `json:"email"`
	Website       *string           `json:"website"`
	Industry      *string           `json:"industry"`
	ContactPerson *string           `json:"contactPerson"`
	Account       *string           `json:"account"`
	Password      *string           `json:"password"`
	BankAccount   *string           `json:"bankAccount"`
	BankName      *string           `json:"bankName"`
	CustomFields  map[string]string `json:"customFields"`
	Notes         *string           `json:"notes"`
	CreatedAt     time.Time         `json:"createdAt"`
}
