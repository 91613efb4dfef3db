// Package finance implements a personal finance ledger: it records income and
// expense entries per account, persists every account to its own flat file,
// and computes balance, period and category totals on demand.
//
// The main types are:
//   - Session: registers, opens, closes and deletes accounts, one at a time.
//   - Directory: the index of registered usernames.
//   - Store: reads and writes account records. A record starts with the
//     account key, the obfuscated password, the username and the balance,
//     followed by the entries, one field per line.
//   - Ledger: the open account. It keeps the balance equal to incomes minus
//     expenses and saves itself after every change.
//
// Passwords are only obfuscated with a per-account key kept in the record,
// this is not a security boundary.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finance
