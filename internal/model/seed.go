package model

// SeedServices is the built-in tree used on first run and whenever the
// stored record cannot be read. Returned fresh on every call so callers
// can mutate their copy freely.
func SeedServices() []Service {
	return []Service{
		{
			ID:   "service-voter",
			Name: "Voter ID Services",
			Icon: IconVote,
			Sections: []Section{
				{
					ID:          "sec-voter-age",
					Title:       "Proof of Date of Birth",
					Description: "Mandatory for new applications. One required.",
					Hint:        IconHint(IconCalendar),
					Items: []Item{
						{ID: "item-birth-cert", Name: "Birth Certificate", Mandatory: true},
						{ID: "item-aadhar", Name: "Aadhaar Card", Mandatory: true},
						{ID: "item-pan", Name: "PAN Card", Mandatory: true},
						{ID: "item-10th", Name: "Class 10th Marksheet", Mandatory: true},
						{ID: "item-passport", Name: "Indian Passport", Mandatory: true},
					},
				},
				{
					ID:          "sec-voter-addr",
					Title:       "Proof of Address",
					Description: "Must show current residence. One required.",
					Hint:        IconHint(IconMapPin),
					Items: []Item{
						{ID: "item-addr-aadhar", Name: "Aadhaar Card", Mandatory: true},
						{ID: "item-ration", Name: "Ration Card", Mandatory: true},
						{ID: "item-water", Name: "Water Bill (Last 1 year)", Mandatory: true},
						{ID: "item-elec", Name: "Electricity Bill (Last 1 year)", Mandatory: true},
						{ID: "item-bank", Name: "Bank Passbook (with photo)", Mandatory: true},
					},
				},
				{
					ID:    "sec-voter-id",
					Title: "General Identity & Photo",
					Hint:  IconHint(IconUser),
					Items: []Item{
						{ID: "item-photo", Name: "Recent Passport Size Photo", Mandatory: true, OfflineOnly: true},
						{ID: "item-family-voter", Name: "Family Member Voter ID No."},
					},
				},
			},
		},
		{
			ID:   "service-aadhaar",
			Name: "Aadhaar Services",
			Icon: IconFingerprint,
			Sections: []Section{
				{
					ID:          "sec-aadhaar-link",
					Title:       "Link Mobile Number",
					Description: "Required for OTP based services.",
					Hint:        IconHint(IconSmartphone),
					Items: []Item{
						{ID: "item-aadhaar-card", Name: "Original Aadhaar Card", Mandatory: true, OfflineOnly: true},
						{ID: "item-biometric", Name: "Biometric Auth (At Centre)", Mandatory: true, OfflineOnly: true},
					},
				},
				{
					ID:    "sec-aadhaar-addr",
					Title: "Address Change / Update",
					Hint:  IconHint(IconHome),
					Items: []Item{
						{ID: "item-rent", Name: "Rent Agreement"},
						{ID: "item-voter", Name: "Voter ID Card"},
						{ID: "item-passport-a", Name: "Passport"},
					},
				},
				{
					ID:          "sec-aadhaar-doc",
					Title:       "Document Update (10+ Years)",
					Description: "Mandatory if Aadhaar was made >10 years ago.",
					Hint:        IconHint(IconFileText),
					Items: []Item{
						{ID: "item-poi", Name: "Proof of Identity (PAN/Voter/Passport)", Mandatory: true},
						{ID: "item-poa", Name: "Proof of Address (Elec Bill/Ration)", Mandatory: true},
					},
				},
				{
					ID:    "sec-aadhaar-pan",
					Title: "PAN - Aadhaar Link",
					Hint:  IconHint(IconCreditCard),
					Items: []Item{
						{ID: "item-fee", Name: "Fee Payment Challan (Rs. 1000)", Mandatory: true},
						{ID: "item-match", Name: "Name/DOB Match Verification", Mandatory: true},
					},
				},
			},
		},
	}
}
