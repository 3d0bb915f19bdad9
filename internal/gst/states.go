package gst

import (
	"regexp"
	"sort"
)

// UnknownState is returned by StateName for codes outside the registry.
const UnknownState = "Unknown"

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// stateNames is the GST state/UT code registry.
var stateNames = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman and Diu",
	"26": "Dadra and Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh (New)",
	"38": "Ladakh",
	"97": "Other Territory",
}

// State is a code/name pair from the registry.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StateName returns the state name for a two-digit GST state code, or
// UnknownState.
func StateName(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}
	return UnknownState
}

// IsKnownStateCode reports whether code is in the registry.
func IsKnownStateCode(code string) bool {
	_, ok := stateNames[code]
	return ok
}

// States returns the registry ordered by code.
func States() []State {
	out := make([]State, 0, len(stateNames))
	for code, name := range stateNames {
		out = append(out, State{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ValidateGSTIN checks the 15-character GSTIN layout: state code, PAN,
// entity number, the literal Z and a check character.
func ValidateGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}

// GSTINStateCode returns the state code embedded in a GSTIN, or "" when the
// GSTIN is malformed.
func GSTINStateCode(gstin string) string {
	if !ValidateGSTIN(gstin) {
		return ""
	}
	return gstin[:2]
}
