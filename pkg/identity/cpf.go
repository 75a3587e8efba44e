package identity

import (
	"strings"

	"github.com/agentstation/cadastro/pkg/constants"
)

// Digits strips everything but ASCII digits from a national ID.
func Digits(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders an 11 digit national ID as 000.000.000-00.
// Values that do not have exactly 11 digits are returned unchanged.
func FormatCPF(cpf string) string {
	d := Digits(cpf)
	if len(d) != constants.MinCPFDigits {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// IsPlaceholderCPF reports whether cpf is the placeholder the sanitizer
// writes for residents captured without a national ID.
func IsPlaceholderCPF(cpf string) bool {
	return cpf == "" || Digits(cpf) == Digits(constants.ResidentCPF)
}

// ValidCPF reports whether cpf has 11 digits, is not a repeated digit
// sequence, and carries correct check digits.
//
// The merger never calls this: matching stays on the raw field value.
// It backs the health report only.
func ValidCPF(cpf string) bool {
	d := Digits(cpf)
	if len(d) != constants.MinCPFDigits {
		return false
	}
	if strings.Count(d, d[:1]) == len(d) {
		return false
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

func checkDigit(digits string, weight int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 {
		rem = 0
	}
	return byte('0' + rem)
}
