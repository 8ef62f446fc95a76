package service

import (
	"regexp"
	"strings"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// codePattern matches member ids and vehicle codes.
var codePattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)

const maxPlaceName = 80

func checkMemberID(op, field, id string) error {
	if !codePattern.MatchString(id) {
		return model.Invalid(op, "%s %q must be alphanumeric", field, id)
	}
	return nil
}

func checkID(op, field string, id int64) error {
	if id <= 0 {
		return model.Invalid(op, "%s must be positive, got %d", field, id)
	}
	return nil
}

func checkPlace(op, field, name string) error {
	if strings.TrimSpace(name) == "" {
		return model.Invalid(op, "%s is required", field)
	}
	if len(name) > maxPlaceName {
		return model.Invalid(op, "%s is longer than %d characters", field, maxPlaceName)
	}
	return nil
}
