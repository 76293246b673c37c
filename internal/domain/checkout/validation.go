// internal/domain/checkout/validation.go
package checkout

import (
	"regexp"
	"strings"
	"unicode"
)

// CustomerInfo is the buyer's contact and delivery data as entered on
// the checkout form. First and last name are combined into the order's
// single customer name column at payload time.
type CustomerInfo struct {
	FirstName  string `json:"ime_kupca"`
	LastName   string `json:"prezime_kupca"`
	Email      string `json:"email_kupca"`
	Address    string `json:"adresa_kupca"`
	City       string `json:"grad_kupca"`
	PostalCode string `json:"postanski_broj_kupca"`
	Phone      string `json:"telefon_kupca"`
}

// FullName joins the trimmed name parts.
func (i *CustomerInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
}

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateCustomerInfo checks every field and returns a map of field
// name to message. An empty map means the info is valid.
func ValidateCustomerInfo(info *CustomerInfo) map[string]string {
	errs := make(map[string]string)

	if !validName(info.FirstName) {
		errs["ime_kupca"] = "Ime mora imati bar 2 slova, bez brojeva"
	}
	if !validName(info.LastName) {
		errs["prezime_kupca"] = "Prezime mora imati bar 2 slova, bez brojeva"
	}

	address := strings.TrimSpace(info.Address)
	if len([]rune(address)) < 3 || !containsDigit(address) {
		errs["adresa_kupca"] = "Adresa mora sadržati ulicu i broj"
	}

	city := strings.TrimSpace(info.City)
	if len([]rune(city)) < 2 {
		errs["grad_kupca"] = "Unesite naziv grada"
	}

	phone := stripWhitespace(info.Phone)
	if !validPhone(phone) {
		errs["telefon_kupca"] = "Unesite ispravan broj telefona"
	}

	email := strings.TrimSpace(info.Email)
	if email != "" && !emailRe.MatchString(email) {
		errs["email_kupca"] = "Unesite ispravnu email adresu"
	}

	return errs
}

func validName(s string) bool {
	name := strings.TrimSpace(s)
	return len([]rune(name)) >= 2 && nameRe.MatchString(name)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validPhone accepts digits and plus signs, with at least nine digits
// overall.
func validPhone(phone string) bool {
	if phone == "" {
		return false
	}
	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+':
		default:
			return false
		}
	}
	return digits >= 9
}
