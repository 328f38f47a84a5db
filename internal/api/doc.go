// Package api exposes the memory engine over HTTP: item exposure and
// ratings, lesson completion, session selection and quizzes. Handlers
// translate HTTP concerns into engine calls and map errors to safe
// responses.
package api
