package errors

// Registry and Lookup Errors (-32200 to -32299)
const (
	// CodeNotFound indicates the named capability is not registered
	CodeNotFound int = -32200

	// CodeDuplicateName indicates a registration conflict on a capability name
	CodeDuplicateName int = -32202
)

// Execution Errors (-32300 to -32399)
const (
	// CodeExecutionError indicates the capability body failed
	CodeExecutionError int = -32302
)

// Internal Contract Errors (-32650 to -32699)
const (
	// CodeInvalidReturnValue indicates the body's return value failed the
	// declared return descriptor
	CodeInvalidReturnValue int = -32650
)

// Validation Errors (-32750 to -32799)
const (
	CodeValidationError int = -32750 // Generic validation error
	CodeMissingArgument int = -32751 // Required argument missing
	CodeUnknownArgument int = -32752 // Argument not declared by the capability
	CodeTypeMismatch    int = -32753 // Argument value fails its descriptor
	CodeInvalidEntry    int = -32754 // Malformed capability definition
)
