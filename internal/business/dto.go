package business

type CreateBusinessRequest struct {
	Name          string            `json:"name" validate:"required"`
	TaxID         string            `json:"taxId" validate:"required,max=20"`
	Address       *string           `json:"address,omitempty"`
	Phone         *string           `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         *string           `json:"email,omitempty"`
	Website       *string           `json:"website,omitempty"`
	Industry      *string           `json:"industry,omitempty"`
	ContactPerson *string           `json:"contactPerson,omitempty"`
	Account       *string           `json:"account,omitempty"`
	Password      *string           `json:"password,omitempty"`
	BankAccount   *string           `json:"bankAccount,omitempty"`
	BankName      *string           `json:"bankName,omitempty"`
	CustomFields  map[string]string `json:"customFields,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// UpdateBusinessRequest carries a partial field replacement: nil means
// leave the column untouched.
type UpdateBusinessRequest struct {
	Name          *string            `json:"name,omitempty"`
	TaxID         *string            `json:"taxId,omitempty" validate:"omitempty,max=20"`
	Address       *string            `json:"address,omitempty"`
	Phone         *string            `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         *string            `json:"email,omitempty"`
	Website       *string            `json:"website,omitempty"`
	Industry      *string            `json:"industry,omitempty"`
	ContactPerson *string            `json:"contactPerson,omitempty"`
	Account       *string            `json:"account,omitempty"`
	Password      *string            `json:"password,omitempty"`
	BankAccount   *string            `json:"bankAccount,omitempty"`
	BankName      *string            `json:"bankName,omitempty"`
	CustomFields  *map[string]string `json:"customFields,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
}

type SearchBusinessRequest struct {
	Field string `json:"field" validate:"required,oneof=name namePartial taxId industry contactPerson phone email website address addressPartial account bankAccount bankName"`
	Value string `json:"value" validate:"required,min=1"`
}

type DeleteBusinessRequest struct {
	Password string `json:"password" validate:"required"`
}

type ListBusinessesResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}
