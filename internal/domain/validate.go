package domain

import "regexp"

var (
	// IATA flight number: two-letter airline code followed by 1 to 4 digits.
	flightNumberRe = regexp.MustCompile(`^[A-Za-z]{2}[0-9]{1,4}$`)

	// IATA airport code: exactly three letters.
	airportCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

	// Optional leading +, optional (ddd) area code, 3-digit exchange,
	// 4 to 6 digit subscriber number, optional space/dot/hyphen separators.
	phoneNumberRe = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)
)

func ValidFlightNumber(s string) bool {
	return flightNumberRe.MatchString(s)
}

func ValidAirportCode(s string) bool {
	return airportCodeRe.MatchString(s)
}

func ValidPhoneNumber(s string) bool {
	return phoneNumberRe.MatchString(s)
}
