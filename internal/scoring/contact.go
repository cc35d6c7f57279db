package scoring

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Contact field points (max 10)
const (
	pointsName     = 2.0
	pointsEmail    = 3.0
	pointsPhone    = 3.0
	pointsLinkedIn = 1.0
	pointsLocation = 1.0

	minPhoneDigits = 7
)

// ContactCompleteness awards points for each usable contact field
func (s *Scorer) ContactCompleteness(contact *types.Contact) types.ParameterResult {
	if contact == nil {
		return types.NewParameterResult(ParamContact, 0, MaxContact, map[string]any{
			"reason": ReasonNoContact,
		})
	}

	score := 0.0
	present := []string{}
	missing := []string{}
	check := func(field string, ok bool, points float64) {
		if ok {
			score += points
			present = append(present, field)
			return
		}
		missing = append(missing, field)
	}

	check("name", strings.TrimSpace(contact.Name) != "", pointsName)
	check("email", s.validEmail(contact.Email), pointsEmail)
	check("phone", validPhone(contact.Phone), pointsPhone)
	check("linkedin", strings.Contains(strings.ToLower(contact.LinkedIn), "linkedin"), pointsLinkedIn)
	check("location", strings.TrimSpace(contact.Location) != "", pointsLocation)

	return types.NewParameterResult(ParamContact, score, MaxContact, map[string]any{
		"present": present,
		"missing": missing,
	})
}

func (s *Scorer) validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return s.validate.Var(email, "email") == nil
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
