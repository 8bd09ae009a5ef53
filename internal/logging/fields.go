package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"

	// FieldEventType classifies log events (stage_start, stage_complete, ...).
	FieldEventType = "event_type"

	// FieldRunID carries the journal run identifier through every event of a run.
	FieldRunID = "run_id"

	// FieldStage names the pipeline stage emitting the event.
	FieldStage = "stage"

	// FieldErrorHint suggests a next step when an operation fails.
	FieldErrorHint = "error_hint"
)
