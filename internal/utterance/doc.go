// Package utterance holds the per-segment metadata records threaded through
// every pipeline stage.
//
// The Store is the single mutable record set for a run: preprocessing seeds
// it with timed audio chunks, then transcription, diarization, translation
// and synthesis each fill in their own fields. Record order equals
// chronological order in the source audio and must survive all mutations.
package utterance
