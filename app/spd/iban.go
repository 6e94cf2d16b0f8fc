package spd

import (
	"fmt"
	"strings"
)

const (
	countryCode = "CZ"

	prefixDigits = 6
	numberDigits = 10
	bankDigits   = 4

	minIBANLen = 15
	maxIBANLen = 34
)

// AccountToIban converts a Czech account number written as
// "[prefix-]number/bank" into its IBAN, e.g.
// "19-2000145399/0800" -> "CZ6508000000192000145399".
func AccountToIban(account string) (string, error) {
	prefix, number, bank, err := parseAccount(account)
	if err != nil {
		return "", err
	}

	bban := bank + prefix + number
	return countryCode + checkDigits(countryCode, bban) + bban, nil
}

func parseAccount(account string) (prefix, number, bank string, err error) {
	raw := strings.TrimSpace(account)

	left, bank, found := strings.Cut(raw, "/")
	if !found {
		return "", "", "", formatError(account, "missing bank code separator '/'")
	}
	if strings.Contains(bank, "/") {
		return "", "", "", formatError(account, "more than one '/'")
	}

	prefix, number, hasPrefix := strings.Cut(left, "-")
	if !hasPrefix {
		number = left
		prefix = "0"
	}

	if err := checkDigitsOnly(account, "prefix", prefix, prefixDigits); err != nil {
		return "", "", "", err
	}
	if err := checkDigitsOnly(account, "account number", number, numberDigits); err != nil {
		return "", "", "", err
	}
	if err := checkDigitsOnly(account, "bank code", bank, bankDigits); err != nil {
		return "", "", "", err
	}

	return leftPad(prefix, prefixDigits), leftPad(number, numberDigits), leftPad(bank, bankDigits), nil
}

func checkDigitsOnly(input, part, value string, maxLen int) error {
	if value == "" {
		return formatError(input, part+" is empty")
	}
	if len(value) > maxLen {
		return formatError(input, fmt.Sprintf("%s is longer than %d digits", part, maxLen))
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return formatError(input, part+" is not numeric")
		}
	}
	return nil
}

func leftPad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}

// checkDigits computes the ISO 7064 MOD 97-10 check digits for bban under
// the given country code.
func checkDigits(country, bban string) string {
	remainder := mod97(bban + country + "00")
	return fmt.Sprintf("%02d", 98-remainder)
}

// mod97 returns the remainder of the numeral form of s divided by 97.
// Letters count as two digits (A=10 ... Z=35). The running remainder never
// exceeds 9799, so strings of any length are fine.
func mod97(s string) int {
	remainder := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			remainder = (remainder*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			remainder = (remainder*100 + int(c-'A') + 10) % 97
		}
	}
	return remainder
}

// NormalizeIBAN drops whitespace and upper-cases the input.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

// ValidateIBAN checks the structure and the MOD 97-10 checksum of an
// already normalized IBAN.
func ValidateIBAN(iban string) error {
	if len(iban) < minIBANLen || len(iban) > maxIBANLen {
		return formatError(iban, fmt.Sprintf("IBAN must be %d to %d characters", minIBANLen, maxIBANLen))
	}
	for i := 0; i < len(iban); i++ {
		c := iban[i]
		isLetter := c >= 'A' && c <= 'Z'
		isDigit := c >= '0' && c <= '9'
		switch {
		case i < 2 && !isLetter:
			return formatError(iban, "country code must be two letters")
		case i >= 2 && i < 4 && !isDigit:
			return formatError(iban, "check digits must be numeric")
		case !isLetter && !isDigit:
			return formatError(iban, "IBAN must be alphanumeric")
		}
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		return formatError(iban, "IBAN checksum mismatch")
	}
	return nil
}

// FormatIBAN splits an IBAN into blocks of four for display.
func FormatIBAN(iban string) string {
	var b strings.Builder
	for i := 0; i < len(iban); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(iban) {
			end = len(iban)
		}
		b.WriteString(iban[i:end])
	}
	return b.String()
}
