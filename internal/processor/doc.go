// Package processor contains the core orchestration logic for the speech
// pipeline. It ties together answering (--ask), filename derivation, speech
// synthesis, artifact relocation, batch processing and the history log.
package processor
