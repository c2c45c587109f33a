// Package pennywise implements the ledger engine of a multi-currency personal
// finance tracker. It keeps account balances, transaction amounts, and the
// base-currency valuation of every account mutually consistent as transactions
// are recorded, amended, removed, or materialized from recurring schedules.
//
// The core functionalities include:
//   - Ledger Mutation: the single source of truth for how an income, expense,
//     or transfer affects one or two account balances, with liability accounts
//     (loans, credit cards) inverting the usual sign convention.
//   - Recurrence Processing: materializing due occurrences of recurring
//     schedules into concrete transactions and advancing schedule state.
//   - Debt Payoff Planning: projecting payoff timelines and interest savings
//     under avalanche, snowball, or custom strategies.
//   - Reconciliation: matching recorded transactions against a bank statement
//     and freezing matched transactions as immutable.
//
// All amounts are exact decimals; rounding is a presentation concern left to
// callers. Persistence goes through the Store interface; the sqlstore
// subpackage provides a SQLite implementation and MemStore an in-memory one.
//
// This package serves as the foundational logic for the `pw` command-line
// tool.
package pennywise
