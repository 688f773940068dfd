package domain

// Entity is a payee/payer reference owned by an external collaborator. The
// core only needs existence and capability lookups plus the address fields
// rendered on a printed check.
type Entity struct {
	EntityID     string `json:"entityID"` // Primary Key (UUID)
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	IsPayable    bool   `json:"isPayable"` // Whether the entity may receive disbursements
	IsActive     bool   `json:"isActive"`
	AuditFields
}
