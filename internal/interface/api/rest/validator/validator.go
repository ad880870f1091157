package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/interface/api/rest/dto/contact"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}

// jsonTagName reports fields by their wire name.
func jsonTagName(f reflect.StructField) string {
	tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

// BindErrors turns binding tag failures into field -> message. It returns nil
// for errors that are not validation failures, e.g. malformed JSON.
func BindErrors(err error) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}

	errs := make(map[string]string, len(ves))
	for _, fe := range ves {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}

// ValidateContact covers what the binding tags cannot: blank strings that
// pass "required" and the born_date format.
func ValidateContact(r contact.Request, now time.Time) map[string]string {
	errs := make(map[string]string)

	for field, v := range map[string]string{
		"first_name":   r.FirstName,
		"last_name":    r.LastName,
		"email":        r.Email,
		"phone_number": r.PhoneNumber,
	} {
		if strings.TrimSpace(v) == "" {
			errs[field] = "is required"
		}
	}

	bdate := strings.TrimSpace(r.BornDate)
	if bdate == "" {
		errs["born_date"] = "is required"
	} else if dob, err := time.Parse(contact.DateLayout, bdate); err != nil {
		errs["born_date"] = "must be YYYY-MM-DD"
	} else if y, m, d := now.Date(); dob.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		errs["born_date"] = "must not be in the future"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidatePaging(skip, limit string) (int, int, error) {
	s, err := nonNegative(skip, DefaultSkip)
	if err != nil {
		return 0, 0, errors.New("skip must be a non-negative integer")
	}
	l, err := nonNegative(limit, DefaultLimit)
	if err != nil {
		return 0, 0, errors.New("limit must be a non-negative integer")
	}

	return s, l, nil
}

func nonNegative(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative")
	}
	return n, nil
}

func ParseContactID(s string) (domain.ID, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return domain.ID(id), true
}

// SearchTerm puts a search query value in NFC. The value is otherwise kept as
// sent: an empty term matches every contact and spaces are significant.
func SearchTerm(v string) (string, error) {
	if !utf8.ValidString(v) {
		return "", errors.New("must be valid UTF-8")
	}
	return norm.NFC.String(v), nil
}
