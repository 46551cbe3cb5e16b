package models

import "time"

// Profile columns that can be written through an update patch. Password is
// accepted on the wire but stored as PasswordHash.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldApartment = "apartment"
	FieldCity      = "city"
	FieldState     = "state"
	FieldCountry   = "country"
	FieldZip       = "zip"

	ColumnPasswordHash = "password_hash"
)

// Profile is one row of the profiles table.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Apartment    string
	City         string
	State        string
	Country      string
	Zip          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the fields a client may see. The password hash is never
// included.
func (p *Profile) Public() map[string]string {
	return map[string]string{
		FieldEmail:     p.Email,
		FieldFirstName: p.FirstName,
		FieldLastName:  p.LastName,
		FieldPhone:     p.Phone,
		FieldAddress:   p.Address,
		FieldApartment: p.Apartment,
		FieldCity:      p.City,
		FieldState:     p.State,
		FieldCountry:   p.Country,
		FieldZip:       p.Zip,
	}
}

// Apply copies known public fields from m into p. Unknown keys, email and
// password are ignored.
func (p *Profile) Apply(m map[string]string) {
	for k, v := range m {
		switch k {
		case FieldFirstName:
			p.FirstName = v
		case FieldLastName:
			p.LastName = v
		case FieldPhone:
			p.Phone = v
		case FieldAddress:
			p.Address = v
		case FieldApartment:
			p.Apartment = v
		case FieldCity:
			p.City = v
		case FieldState:
			p.State = v
		case FieldCountry:
			p.Country = v
		case FieldZip:
			p.Zip = v
		}
	}
}

// Updatable reports whether a patch may carry field name. Email is the row key
// and cannot be changed.
func Updatable(name string) bool {
	switch name {
	case FieldPassword, FieldFirstName, FieldLastName, FieldPhone, FieldAddress,
		FieldApartment, FieldCity, FieldState, FieldCountry, FieldZip:
		return true
	}
	return false
}
