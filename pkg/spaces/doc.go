// Package spaces reports build runs and tasks to a remote spaces service.
//
// A Client packages run-start, per-task, and run-finish records into JSON
// payloads and delivers them over HTTP. Every call goes through the same
// pipeline: optional CORS preflight negotiation, request assembly (auth
// header, team scoping, CI provenance), execution via a retrying transport,
// and status classification into typed errors.
//
// Callers are responsible for ordering: CreateRun must complete before
// CreateTaskSummary or FinishRun reference its run ID. Beyond that,
// operations are stateless and safe for concurrent use.
package spaces
