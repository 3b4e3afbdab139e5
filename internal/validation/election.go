package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/votekeeper/pkg/api"
)

// ColorPattern цвет партии в формате #RRGGBB
var ColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ShortNamePattern аббревиатура партии: буквы, цифры, дефис, точка
var ShortNamePattern = regexp.MustCompile(`^[\p{L}0-9.\-]{1,16}$`)

const (
	// MaxNameLen максимальная длина имени кандидата или названия партии
	MaxNameLen = 128
	// MinCandidateAge минимальный возраст кандидата
	MinCandidateAge = 25
	// MaxCandidateAge верхняя граница возраста
	MaxCandidateAge = 120
)

// ValidateName проверяет имя кандидата или название партии
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%s must not exceed %d characters", field, MaxNameLen)
	}
	return nil
}

// ValidateParty проверяет запрос на создание или изменение партии
func ValidateParty(req api.PartyRequest) error {
	if err := ValidateName("name", req.Name); err != nil {
		return err
	}
	if req.ShortName != "" && !ShortNamePattern.MatchString(req.ShortName) {
		return fmt.Errorf("short_name must be 1-16 letters, digits, dots or dashes")
	}
	if req.Color != "" && !ColorPattern.MatchString(req.Color) {
		return fmt.Errorf("color must be in #RRGGBB format")
	}
	return nil
}

// ValidateCandidate проверяет запрос на создание или изменение кандидата.
// Существование района и партии проверяется хранилищем.
func ValidateCandidate(req api.CandidateRequest) error {
	if err := ValidateName("name", req.Name); err != nil {
		return err
	}
	if strings.TrimSpace(req.DistrictID) == "" {
		return fmt.Errorf("district_id cannot be empty")
	}
	if req.Constituency < 1 {
		return fmt.Errorf("constituency must be a positive number")
	}
	if req.Votes < 0 {
		return fmt.Errorf("votes cannot be negative")
	}
	if req.Age != 0 && (req.Age < MinCandidateAge || req.Age > MaxCandidateAge) {
		return fmt.Errorf("age must be between %d and %d", MinCandidateAge, MaxCandidateAge)
	}
	switch req.Status {
	case "", api.CandidateStatusContesting, api.CandidateStatusLeading,
		api.CandidateStatusElected, api.CandidateStatusLost:
	default:
		return fmt.Errorf("unknown status %q", req.Status)
	}
	return nil
}
