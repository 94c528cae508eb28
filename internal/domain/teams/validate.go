package teams

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidShortName is returned for identifiers that are not 2-4 letters.
var ErrInvalidShortName = errors.New("invalid team short name")

var validate = validator.New()

// NormalizeShortName trims and upper-cases a short identifier such as "bos",
// rejecting anything that is not 2-4 ASCII letters.
func NormalizeShortName(raw string) (string, error) {
	short := strings.ToUpper(strings.TrimSpace(raw))
	if err := validate.Var(short, "required,alpha,min=2,max=4"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidShortName, raw)
	}
	return short, nil
}
