// Package services defines the shared error taxonomy and context annotations
// used by pipeline stages.
//
// Stage failures are tagged with sentinel markers (validation, configuration,
// external tool, downgrade, collision) so the workflow manager and CLI can
// classify them without string matching. Context helpers thread the run
// identifier and stage name through blocking calls for log correlation.
package services
