// Package srs implements the memory scoring policy: how a learner's rating
// of a vocabulary item changes the item's score. The functions here are
// pure; persistence is handled by the callers.
package srs
