package tracing

// Span attribute keys for engine tracing.
// These constants define the semantic conventions for span attributes
// across the conversion and composition paths.
const (
	// Unit attributes
	AttrUnitFrom  = "unit.from"
	AttrUnitTo    = "unit.to"
	AttrUnitInput = "unit.input"
	AttrUnitScale = "unit.scale"
	AttrPhysical  = "unit.physical_type"

	// Compose attributes
	AttrCandidateCount = "compose.candidates"
	AttrResultCount    = "compose.results"
	AttrIncludePrefix  = "compose.include_prefix"
	AttrSystem         = "compose.system"

	// Convert attributes
	AttrEquivalencies = "convert.equivalencies"
	AttrValue         = "convert.value"
	AttrResult        = "convert.result"

	// Catalog attributes
	AttrCatalogSize  = "catalog.size"
	AttrCatalogPaths = "catalog.paths"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span names for consistent naming across commands.
const (
	SpanParse     = "quanta.parse"
	SpanConvert   = "quanta.convert"
	SpanCompose   = "quanta.compose"
	SpanDecompose = "quanta.decompose"
	SpanReload    = "quanta.catalog.reload"
)
