// Package postgres implements store.KVStore on PostgreSQL through the pgx
// database/sql driver. The schema is managed with goose migrations embedded
// in the binary.
package postgres
