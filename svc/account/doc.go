// Package account owns the accounts table: the Account type, the Repository
// contract with Postgres and in-memory implementations, and the goose
// migrations that create the table.
package account
