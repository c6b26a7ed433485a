package errors

// Convenience functions for common error patterns

// Input errors

func InputNotFound(path string, cause error) *MDStreamError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "input file not found").
		WithContext("path", path)
}

func InputUnreadable(path string, cause error) *MDStreamError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "input file unreadable").
		WithContext("path", path)
}

// Config errors

func ConfigInvalid(path string, cause error) *MDStreamError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *MDStreamError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Output errors

func OutputFailed(target string, cause error) *MDStreamError {
	return Wrap(cause, CategoryOutput, SeverityFatal, "writing output failed").
		WithContext("target", target)
}

// Internal errors

func InternalError(message string, cause error) *MDStreamError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
