package errors

import "fmt"

// Common error wrapping patterns used throughout the codebase

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// NewConfigurationError reports an invalid configuration value
func NewConfigurationError(key string, value interface{}, allowed ...string) *BaseError {
	err := Newf(ConfigurationErrorCode, "invalid %s %v", key, value).
		WithContext("key", key).
		WithContext("value", value)
	if len(allowed) > 0 {
		err.WithSuggestion(fmt.Sprintf("use one of: %v", allowed))
	}
	return err
}

// WrapTransportError wraps HTTP server errors
func WrapTransportError(operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s server", operation)
	return Wrap(TransportErrorCode, message, cause).
		WithContext("operation", operation)
}
