// Package dedupe implements duplicate detection and resolution over a flat
// directory of audio files.
//
// A scan buckets files under a group key derived either from the normalized
// song title or from a content digest, keeping only buckets with two or more
// members. Resolution picks one representative per group and removes the
// rest, either for real or as a dry-run report.
//
// Every run rebuilds its view of the directory from scratch; nothing
// persists between invocations.
package dedupe
