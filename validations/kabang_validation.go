package validations

import (
	"context"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	pkgError "github.com/kabang/kabang/pkg/error"
)

// bangPattern matches what the query parser accepts after "!".
var bangPattern = regexp.MustCompile(`^\w+$`)

var bangRule = validation.Match(bangPattern).Error("must contain only letters, digits or underscores")

// templateURL accepts absolute URLs, with or without a {query} placeholder.
var templateURL = validation.By(func(value interface{}) error {
	v, _ := validation.Indirect(value)
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	return validation.Validate(strings.ReplaceAll(s, "{query}", "q"), is.RequestURL, is.URL)
})

func ValidateCreateKabang(ctx context.Context, request domainKabang.CreateKabangRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
		validation.Field(&request.Bang, validation.Required, bangRule),
		validation.Field(&request.URL, validation.Required, templateURL),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateUpdateKabang(ctx context.Context, request domainKabang.UpdateKabangRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.NilOrNotEmpty),
		validation.Field(&request.Bang, validation.NilOrNotEmpty, bangRule),
		validation.Field(&request.URL, validation.NilOrNotEmpty, templateURL),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

// ValidateImportBang checks one entry of an import payload.
func ValidateImportBang(ctx context.Context, bang domainKabang.ExportBang) error {
	err := validation.ValidateStructWithContext(ctx, &bang,
		validation.Field(&bang.Name, validation.Required),
		validation.Field(&bang.Bang, validation.Required, bangRule),
		validation.Field(&bang.URL, validation.Required, templateURL),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

// ValidateURL checks a single absolute URL, as typed into a command.
func ValidateURL(raw string) error {
	if err := validation.Validate(raw, validation.Required, is.RequestURL, is.URL); err != nil {
		return pkgError.ValidationError("url: " + err.Error())
	}
	return nil
}

// ValidateBang checks a trigger typed into a command.
func ValidateBang(bang string) error {
	if err := validation.Validate(bang, validation.Required, bangRule); err != nil {
		return pkgError.ValidationError("bang: " + err.Error())
	}
	return nil
}
