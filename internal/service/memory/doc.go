// Package memory is the public face of the memory scoring engine.
//
// Service records first exposures and ratings of vocabulary items, ranks
// candidates for practice sessions and builds quizzes. Exposure and rating
// never return errors: invalid input and storage failures are logged and
// the call becomes a no-op, so the learner's flow is never interrupted by
// progress tracking.
package memory
