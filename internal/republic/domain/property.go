package domain

// Property is a row of imoveis. The table is created with the schema but no
// operation here reads or writes it; listing CRUD lives elsewhere.
type Property struct {
	ID          int64
	Street      string
	District    string
	Number      string
	PostalCode  string
	Complement  string
	Price       float64
	Bedrooms    int
	Bathrooms   int
	Included    string
	Other       string
	Description string
	Image       string
	Kind        string
	OwnerID     int64
	Active      bool
	Latitude    float64
	Longitude   float64
}
