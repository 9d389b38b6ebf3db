package errors

import "time"

// New creates a generic AppError with the supplied metadata.
func New(code string, category ErrorCategory, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Category:  category,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// StorageError creates a STORAGE category error instance.
func StorageError(code, message string, err error) *AppError {
	return New(code, ErrCategoryStorage, message, err)
}

// ValidationError creates a VALIDATION category error instance.
func ValidationError(code, message string, err error) *AppError {
	return New(code, ErrCategoryValidation, message, err)
}

// ConfigError creates a CONFIG category error instance.
func ConfigError(code, message string, err error) *AppError {
	return New(code, ErrCategoryConfig, message, err)
}

// ManifestError creates a MANIFEST category error instance.
func ManifestError(code, message string, err error) *AppError {
	return New(code, ErrCategoryManifest, message, err)
}

// SystemError creates a SYSTEM category error instance.
func SystemError(code, message string, err error) *AppError {
	return New(code, ErrCategorySystem, message, err)
}
