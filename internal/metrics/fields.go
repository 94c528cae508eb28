package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrPipeline = "pipeline"
)

// Pipeline kinds reported through RecordPipelineRun.
const (
	PipelineImport = "import"
	PipelineExport = "export"
)
