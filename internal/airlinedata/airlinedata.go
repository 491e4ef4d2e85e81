// Package airlinedata holds the static, deterministic airline-prefix
// lookup table FlightProcessor needs to resolve a callsign into an
// airline name (spec §4.F.6). The prefix/code values are adapted from
// GrowlyX-flighttracker's icaoToIATACode table; names are the carriers
// those ICAO designators actually identify. The former teacher
// api/v2/airlines.go scraped airframes.org live for this — this service
// has no HTML-scraping surface, so the table is baked in instead (see
// DESIGN.md).
package airlinedata

// Unknown is returned by Lookup when a callsign's prefix isn't in the
// table.
const Unknown = "Unknown"

// byIATAPrefix maps the two-letter IATA airline code (the first two
// characters of a commercial callsign, e.g. "UA" in "UA2090") to the
// carrier's common name.
var byIATAPrefix = map[string]string{
	// US majors
	"UA": "United Airlines",
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"WN": "Southwest Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"NK": "Spirit Airlines",
	"F9": "Frontier Airlines",
	"HA": "Hawaiian Airlines",

	// US regionals
	"OO": "SkyWest Airlines",
	"YX": "Republic Airways",
	"MQ": "Envoy Air",
	"PT": "Piedmont Airlines",
	"OH": "PSA Airlines",
	"QX": "Horizon Air",
	"G7": "GoJet Airlines",
	"AC": "Air Canada",

	// European
	"AF": "Air France",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"KL": "KLM Royal Dutch Airlines",
	"SK": "SAS Scandinavian Airlines",
	"AY": "Finnair",
	"IB": "Iberia",
	"AZ": "ITA Airways",
	"TP": "TAP Air Portugal",
	"VS": "Virgin Atlantic",
	"EI": "Aer Lingus",
	"U2": "easyJet",
	"FR": "Ryanair",
	"LX": "Swiss International Air Lines",
	"OS": "Austrian Airlines",
	"SN": "Brussels Airlines",
	"LO": "LOT Polish Airlines",
	"OK": "Czech Airlines",
	"EW": "Eurowings",
	"W6": "Wizz Air",
	"VY": "Vueling",
	"DY": "Norwegian Air Shuttle",

	// Middle East
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"QR": "Qatar Airways",
	"TK": "Turkish Airlines",
	"SA": "South African Airways",
	"GF": "Gulf Air",
	"ME": "Middle East Airlines",
	"SV": "Saudia",
	"LY": "El Al",
	"FZ": "flydubai",

	// Asian
	"NH": "All Nippon Airways",
	"JL": "Japan Airlines",
	"CX": "Cathay Pacific",
	"SQ": "Singapore Airlines",
	"BR": "EVA Air",
	"CI": "China Airlines",
	"CA": "Air China",
	"CZ": "China Southern Airlines",
	"MU": "China Eastern Airlines",
	"HU": "Hainan Airlines",
	"KE": "Korean Air",
	"OZ": "Asiana Airlines",
	"TH": "Thai Airways",
	"MH": "Malaysia Airlines",
	"VN": "Vietnam Airlines",
	"GA": "Garuda Indonesia",
	"AK": "AirAsia",
	"PR": "Philippine Airlines",
	"5J": "Cebu Pacific",
	"AI": "Air India",
	"6E": "IndiGo",

	// Oceania
	"QF": "Qantas",
	"NZ": "Air New Zealand",
	"JQ": "Jetstar Airways",

	// Americas
	"WS": "WestJet",
	"AM": "Aeromexico",
	"G3": "Gol Transportes Aereos",
	"AV": "Avianca",
	"CM": "Copa Airlines",
	"LA": "LATAM Airlines",
	"AD": "Azul Brazilian Airlines",

	// Africa
	"ET": "Ethiopian Airlines",
	"MS": "EgyptAir",
}

// Lookup returns the airline name associated with prefix, a two-character
// IATA-style code taken from the start of a callsign, or Unknown if the
// prefix isn't recognized.
func Lookup(prefix string) string {
	if name, ok := byIATAPrefix[prefix]; ok {
		return name
	}
	return Unknown
}

// icaoToIATA maps a three-letter ICAO airline designator (as found in
// OpenSky callsigns, e.g. "UAL" in "UAL2090") to its two-letter IATA
// code, directly adapted from GrowlyX-flighttracker's icaoToIATACode
// table. RouteClient uses this to retry a route query with IATA-shaped
// parameters when the ICAO shape yields nothing.
var icaoToIATA = map[string]string{
	"UAL": "UA", "AAL": "AA", "DAL": "DL", "SWA": "WN", "ASA": "AS",
	"JBU": "B6", "NKS": "NK", "FFT": "F9", "HAL": "HA",
	"SKW": "OO", "RPA": "YX", "ENY": "MQ", "PDT": "PT", "PSA": "OH",
	"JIA": "OH", "CPZ": "QX", "GJS": "G7", "ACA": "AC",
	"AFR": "AF", "BAW": "BA", "DLH": "LH", "KLM": "KL", "SAS": "SK",
	"FIN": "AY", "IBE": "IB", "AZA": "AZ", "TAP": "TP", "VIR": "VS",
	"EIN": "EI", "EZY": "U2", "RYR": "FR", "SWR": "LX", "AUA": "OS",
	"BEL": "SN", "LOT": "LO", "CSA": "OK", "EWG": "EW", "WZZ": "W6",
	"VLG": "VY", "NOZ": "DY",
	"UAE": "EK", "ETD": "EY", "QTR": "QR", "THY": "TK", "SAA": "SA",
	"GFA": "GF", "MEA": "ME", "SVA": "SV", "ELY": "LY", "FDB": "FZ",
	"ANA": "NH", "JAL": "JL", "CPA": "CX", "SIA": "SQ", "EVA": "BR",
	"CAL": "CI", "CCA": "CA", "CSN": "CZ", "CES": "MU", "HDA": "HU",
	"KAL": "KE", "AAR": "OZ", "THA": "TH", "MAS": "MH", "VNA": "VN",
	"GIA": "GA", "AXM": "AK", "PAL": "PR", "CEB": "5J",
	"AIC": "AI", "IGO": "6E",
	"QFA": "QF", "ANZ": "NZ", "JST": "JQ",
	"WJA": "WS", "AMX": "AM", "GLO": "G3", "AVA": "AV", "CMP": "CM",
	"LAN": "LA", "AZU": "AD",
	"ETH": "ET", "MSR": "MS",
}

// ICAOToIATA returns the IATA airline code for a three-letter ICAO
// designator, and whether it was found.
func ICAOToIATA(icao string) (string, bool) {
	code, ok := icaoToIATA[icao]
	return code, ok
}
