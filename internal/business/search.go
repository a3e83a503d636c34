package business

// matchMode selects the predicate shape a search field maps to.
type matchMode int

const (
	matchExact matchMode = iota
	matchPartial
)

type searchSpec struct {
	column string
	mode   matchMode
}

// searchFields maps the search field tags of the wire protocol to a
// column and a match mode. Only name and address support partial
// (substring) matching; everything else is strict equality.
var searchFields = map[string]searchSpec{
	"name":           {column: "name", mode: matchExact},
	"namePartial":    {column: "name", mode: matchPartial},
	"taxId":          {column: "tax_id", mode: matchExact},
	"industry":       {column: "industry", mode: matchExact},
	"contactPerson":  {column: "contact_person", mode: matchExact},
	"phone":          {column: "phone", mode: matchExact},
	"email":          {column: "email", mode: matchExact},
	"website":        {column: "website", mode: matchExact},
	"address":        {column: "address", mode: matchExact},
	"addressPartial": {column: "address", mode: matchPartial},
	"account":        {column: "account", mode: matchExact},
	"bankAccount":    {column: "bank_account", mode: matchExact},
	"bankName":       {column: "bank_name", mode: matchExact},
}

// searchPredicate resolves a field tag to its spec. The second return
// is false for unrecognized tags; callers answer those with an empty
// result set rather than an error, which keeps the storage layer inert
// when the schema-level enum check is bypassed.
func searchPredicate(field string) (searchSpec, bool) {
	spec, ok := searchFields[field]
	return spec, ok
}
