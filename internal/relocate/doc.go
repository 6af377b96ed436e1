// Package relocate moves managed audio files into a destination library
// directory after deduplication, enumerating and moving each path explicitly.
package relocate
