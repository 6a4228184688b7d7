// Package bondladder simulates a fixed-maturity-band bond-ladder strategy
// over historical bond price and cash-flow data, producing a daily portfolio
// valuation time series.
//
// The core functionalities include:
//   - Rebalancing Engine: a sequential state machine that advances one
//     trading date at a time, rolling positions forward, accruing coupons,
//     unwinding positions whose remaining maturity breaches the trigger
//     window, and funding a replacement buy.
//   - Cash Ledger: an append-only, per-date cash bookkeeping record (opening
//     cash, coupons received, net transaction flow) that always balances.
//   - Order Generation: integer-unit orders under equal-split allocation and
//     fixed per-unit transaction costs; the engine never overspends.
//   - Valuation: the per-date aggregation of position market values with
//     ledger cash into the total portfolio value.
//   - Data Materialization: decoding instrument, price and cash-flow tables
//     from JSONL, and mining vendor quote feeds, into the in-memory tables
//     the engine replays.
//
// All monetary arithmetic is exact decimal arithmetic; the simulation is
// a deterministic batch replay over externally supplied tables.
//
// This package serves as the foundational logic for the `blsim` command-line
// tool.
package bondladder
