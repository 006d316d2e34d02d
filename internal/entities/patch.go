package entities

import "github.com/oapi-codegen/nullable"

// Patch fields come in two shapes:
//
//   - required columns use a plain pointer; nil means "leave unchanged"
//   - nullable columns use nullable.Nullable, which also carries an explicit
//     null that clears the column
//
// The helpers below implement the merge rule for each shape.

func setRequired[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setText treats an empty string like an absent one, so a required text
// column can never be blanked by a patch.
func setText(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setNullable[T any](dst **T, f nullable.Nullable[T]) {
	if !f.IsSpecified() {
		return
	}
	if f.IsNull() {
		*dst = nil
		return
	}
	v := f.MustGet()
	*dst = &v
}

// ValueOf returns the value carried by a nullable patch field, or nil when the
// field is unspecified or explicitly null.
func ValueOf[T any](f nullable.Nullable[T]) *T {
	if !f.IsSpecified() || f.IsNull() {
		return nil
	}
	v := f.MustGet()
	return &v
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
