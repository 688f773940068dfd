package models

// Entity is the database representation of a payee/payer reference.
type Entity struct {
	EntityID     string `json:"entityID"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	IsPayable    bool   `json:"isPayable"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
