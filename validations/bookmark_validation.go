package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	pkgError "github.com/kabang/kabang/pkg/error"
)

func ValidateCreateBookmark(ctx context.Context, request domainBookmark.CreateBookmarkRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.URL, validation.Required, is.RequestURL),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateUpdateBookmark(ctx context.Context, request domainBookmark.UpdateBookmarkRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.URL, validation.NilOrNotEmpty, is.RequestURL),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
