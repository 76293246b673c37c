package checkout

import "testing"

func validInfo() *CustomerInfo {
	return &CustomerInfo{
		FirstName:  "Marko",
		LastName:   "Marković",
		Email:      "marko@example.com",
		Address:    "Kneza Miloša 12",
		City:       "Beograd",
		PostalCode: "11000",
		Phone:      "+381 64 123 4567",
	}
}

func TestValidateCustomerInfoAccepts(t *testing.T) {
	if errs := ValidateCustomerInfo(validInfo()); len(errs) != 0 {
		t.Errorf("expected valid info, got errors: %v", errs)
	}

	info := validInfo()
	info.Email = ""
	if errs := ValidateCustomerInfo(info); len(errs) != 0 {
		t.Errorf("empty email must be valid, got errors: %v", errs)
	}

	info = validInfo()
	info.Phone = "0641+234567"
	if errs := ValidateCustomerInfo(info); len(errs) != 0 {
		t.Errorf("plus signs anywhere in the phone must be valid, got errors: %v", errs)
	}
}

func TestValidateCustomerInfoRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
		field  string
	}{
		{"first name too short", func(i *CustomerInfo) { i.FirstName = "M" }, "ime_kupca"},
		{"first name with digits", func(i *CustomerInfo) { i.FirstName = "Marko123" }, "ime_kupca"},
		{"empty first name", func(i *CustomerInfo) { i.FirstName = "  " }, "ime_kupca"},
		{"last name too short", func(i *CustomerInfo) { i.LastName = "M" }, "prezime_kupca"},
		{"last name with digits", func(i *CustomerInfo) { i.LastName = "M4rković" }, "prezime_kupca"},
		{"address without number", func(i *CustomerInfo) { i.Address = "Kneza Miloša" }, "adresa_kupca"},
		{"address too short", func(i *CustomerInfo) { i.Address = "a1" }, "adresa_kupca"},
		{"city too short", func(i *CustomerInfo) { i.City = "B" }, "grad_kupca"},
		{"phone too short", func(i *CustomerInfo) { i.Phone = "06412" }, "telefon_kupca"},
		{"phone with letters", func(i *CustomerInfo) { i.Phone = "064abc4567" }, "telefon_kupca"},
		{"phone empty", func(i *CustomerInfo) { i.Phone = "" }, "telefon_kupca"},
		{"malformed email", func(i *CustomerInfo) { i.Email = "marko@invalid" }, "email_kupca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(info)
			errs := ValidateCustomerInfo(info)
			if _, ok := errs[tt.field]; !ok {
				t.Errorf("expected error on field %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateUnicodeNames(t *testing.T) {
	info := validInfo()
	info.FirstName = "Đorđe"
	info.LastName = "Живковић"
	if errs := ValidateCustomerInfo(info); len(errs) != 0 {
		t.Errorf("cyrillic and accented names must be valid, got %v", errs)
	}
}

func TestPhoneWhitespaceStripped(t *testing.T) {
	info := validInfo()
	info.Phone = " 064 123 45 67 "
	if errs := ValidateCustomerInfo(info); len(errs) != 0 {
		t.Errorf("spaced phone must validate after stripping, got %v", errs)
	}
}
