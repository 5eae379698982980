package simplesite

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var validStatuses = []interface{}{
	string(PostStatusDraft),
	string(PostStatusPublished),
	string(PostStatusArchived),
}

// Validate checks the request and returns a *ValidationError on failure.
func (r CreatePostRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 200).Error("title must be between 3 and 200 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(2, 100).Error("category must be between 2 and 100 characters"),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, 500).Error("excerpt must be at most 500 characters"),
		),
		validation.Field(&r.Status,
			validation.In(validStatuses...).Error("status must be draft, published or archived"),
		),
	))
}

// Validate checks the request and returns a *ValidationError on failure.
// Only fields present in the request are validated.
func (r UpdatePostRequest) Validate() error {
	fields := make(map[string]string)
	if r.Title != nil {
		if n := len(*r.Title); n < 3 || n > 200 {
			fields["title"] = "title must be between 3 and 200 characters"
		}
	}
	if r.Content != nil && *r.Content == "" {
		fields["content"] = "content cannot be empty"
	}
	if r.Category != nil {
		if n := len(*r.Category); n < 2 || n > 100 {
			fields["category"] = "category must be between 2 and 100 characters"
		}
	}
	if r.Excerpt != nil && len(*r.Excerpt) > 500 {
		fields["excerpt"] = "excerpt must be at most 500 characters"
	}
	if r.Status != nil && !PostStatus(*r.Status).IsValid() {
		fields["status"] = "status must be draft, published or archived"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks the request and returns a *ValidationError on failure.
func (r SubscribeRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("email is not a valid address"),
		),
	))
}

// Validate checks the request and returns a *ValidationError on failure.
func (r ContactRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100).Error("name must be between 2 and 100 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("email is not a valid address"),
		),
		validation.Field(&r.Subject,
			validation.Length(0, 200).Error("subject must be at most 200 characters"),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 5000).Error("message must be between 10 and 5000 characters"),
		),
	))
}

// wrapValidation converts ozzo's field error map into a *ValidationError so
// callers only ever see the package's own error taxonomy.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fieldErr := range fieldErrs {
			fields[name] = fieldErr.Error()
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: map[string]string{"request": err.Error()}}
}
