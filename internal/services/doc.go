// Package services holds the shared error taxonomy and context plumbing used
// by the external tool collaborators and the dedupe engine.
package services
