package handlers

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"healthapp/pkg/apperr"
	"healthapp/pkg/models"
)

// Phone: optional leading +, 10-15 digits.
var phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

func validLength(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 2 && n <= 50
}

func validAge(age int) bool { return age >= 13 && age <= 120 }

// passwordProblem returns a description of the first violated policy rule,
// or "" when the password is acceptable.
func passwordProblem(p string) string {
	if len(p) < 8 {
		return "must be at least 8 characters long"
	}
	var hasDigit, hasUpper bool
	for _, r := range p {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasDigit {
		return "must contain at least one digit"
	}
	if !hasUpper {
		return "must contain at least one uppercase letter"
	}
	return ""
}

func validateSignup(req models.SignupRequest) *apperr.Error {
	details := map[string]string{}
	if !validLength(req.Username) {
		details["username"] = "must be 2-50 characters"
	}
	if !validLength(req.Name) {
		details["name"] = "must be 2-50 characters"
	}
	if !validAge(req.Age) {
		details["age"] = "must be between 13 and 120"
	}
	if !req.Gender.Valid() {
		details["gender"] = "must be one of female, male, other, unspecified"
	}
	if !phoneRe.MatchString(req.Phone) {
		details["phone"] = "must be 10-15 digits with an optional leading +"
	}
	if problem := passwordProblem(req.Password); problem != "" {
		details["password"] = problem
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

func validateLogin(req models.LoginRequest) *apperr.Error {
	details := map[string]string{}
	if req.Username == "" {
		details["username"] = "required"
	}
	if req.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

// validatePatch checks only the fields the patch actually carries.
func validatePatch(patch models.AccountPatch) *apperr.Error {
	details := map[string]string{}
	if patch.Name != nil && !validLength(*patch.Name) {
		details["name"] = "must be 2-50 characters"
	}
	if patch.Age != nil && !validAge(*patch.Age) {
		details["age"] = "must be between 13 and 120"
	}
	if patch.Phone != nil && !phoneRe.MatchString(*patch.Phone) {
		details["phone"] = "must be 10-15 digits with an optional leading +"
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}
